package backend

// Firestore collection names shared by the repositories and the migration
// tool. The details subcollection hangs off each tax calculation document.
const (
	CollCompanies       = "companies"
	CollInvoices        = "invoices"
	CollThirdParties    = "third_parties"
	CollTaxCalculations = "tax_calculations"
	CollDetails         = "details"
)
