package domain

// DefaultRetentionRate is the customary ITBIS retention withheld by the
// payer (norm 02-05 services retention).
const DefaultRetentionRate = 0.30

// RetentionAmount is the ITBIS withheld for one invoice. Zero when
// retention does not apply to it.
func RetentionAmount(taxAmount, rate float64, applied bool) float64 {
	if !applied {
		return 0
	}
	return taxAmount * rate
}

// AmountPayable is the portion of the invoice total to remit.
func AmountPayable(totalAmount, payablePercent float64) float64 {
	return totalAmount * payablePercent
}

// TaxDue is the tax owed for one invoice inside a calculation:
// the invoice's ITBIS minus what the payer withheld, plus the payable
// portion of the total.
func TaxDue(taxAmount, totalAmount, rate, payablePercent float64, retentionApplied bool) float64 {
	return (taxAmount - RetentionAmount(taxAmount, rate, retentionApplied)) +
		AmountPayable(totalAmount, payablePercent)
}
