package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
)

type invoicePayload struct {
	CompanyID       string  `json:"company_id"`
	Kind            string  `json:"kind"`
	Date            string  `json:"date"`
	Number          string  `json:"number"`
	CounterpartRNC  string  `json:"counterpart_rnc"`
	CounterpartName string  `json:"counterpart_name"`
	Currency        string  `json:"currency"`
	ExchangeRate    float64 `json:"exchange_rate"`
	TaxAmount       float64 `json:"tax_amount"`
	TotalAmount     float64 `json:"total_amount"`
}

func (p invoicePayload) toRequest(id string) (invoicedomain.SaveInvoiceRequest, error) {
	date, err := time.Parse(dateOnlyLayout, strings.TrimSpace(p.Date))
	if err != nil {
		return invoicedomain.SaveInvoiceRequest{}, invoicedomain.ErrInvalidDate
	}

	return invoicedomain.SaveInvoiceRequest{
		ID:              id,
		CompanyID:       p.CompanyID,
		Kind:            p.Kind,
		Date:            date,
		Number:          p.Number,
		CounterpartRNC:  p.CounterpartRNC,
		CounterpartName: p.CounterpartName,
		Currency:        p.Currency,
		ExchangeRate:    p.ExchangeRate,
		TaxAmount:       p.TaxAmount,
		TotalAmount:     p.TotalAmount,
	}, nil
}

func (s *Server) ListInvoices(c *gin.Context) {
	filter, err := parsePeriodFilter(c.Query("month"), c.Query("year"), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	pageSize, err := parsePageSize(c.Query("page_size"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		CompanyID: strings.TrimSpace(c.Query("company_id")),
		Filter:    filter,
		PageToken: c.Query("page_token"),
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	item, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var payload invoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	req, err := payload.toRequest("")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Add(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordInvoiceSaved(payload.Kind)
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var payload invoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	req, err := payload.toRequest(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) Dashboard(c *gin.Context) {
	filter, err := parsePeriodFilter(c.Query("month"), c.Query("year"), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.invoiceSvc.Dashboard(c.Request.Context(), invoicedomain.DashboardRequest{
		CompanyID: strings.TrimSpace(c.Query("company_id")),
		Filter:    filter,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
