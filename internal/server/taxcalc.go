package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
)

type calculationPayload struct {
	ID             string                   `json:"id"`
	CompanyID      string                   `json:"company_id"`
	Name           string                   `json:"name"`
	PeriodStart    string                   `json:"period_start"`
	PeriodEnd      string                   `json:"period_end"`
	RetentionRate  float64                  `json:"retention_rate"`
	PayablePercent float64                  `json:"payable_percent"`
	Details        []calculationDetailInput `json:"details"`
}

type calculationDetailInput struct {
	InvoiceID        string `json:"invoice_id"`
	RetentionApplied bool   `json:"retention_applied"`
}

func (s *Server) SaveCalculation(c *gin.Context) {
	var payload calculationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	start, err := time.Parse(dateOnlyLayout, strings.TrimSpace(payload.PeriodStart))
	if err != nil {
		AbortWithError(c, taxcalcdomain.ErrInvalidPeriod)
		return
	}
	end, err := time.Parse(dateOnlyLayout, strings.TrimSpace(payload.PeriodEnd))
	if err != nil {
		AbortWithError(c, taxcalcdomain.ErrInvalidPeriod)
		return
	}

	details := make([]taxcalcdomain.DetailSelection, 0, len(payload.Details))
	for _, d := range payload.Details {
		details = append(details, taxcalcdomain.DetailSelection{
			InvoiceID:        d.InvoiceID,
			RetentionApplied: d.RetentionApplied,
		})
	}

	calc, err := s.taxCalcSvc.Save(c.Request.Context(), taxcalcdomain.SaveCalculationRequest{
		ID:             payload.ID,
		CompanyID:      payload.CompanyID,
		Name:           payload.Name,
		PeriodStart:    start,
		PeriodEnd:      end,
		RetentionRate:  payload.RetentionRate,
		PayablePercent: payload.PayablePercent,
		Details:        details,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": calc})
}

func (s *Server) ListCalculations(c *gin.Context) {
	companyID := strings.TrimSpace(c.Query("company_id"))
	if companyID == "" {
		AbortWithError(c, taxcalcdomain.ErrInvalidCompany)
		return
	}

	calcs, err := s.taxCalcSvc.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": calcs})
}

func (s *Server) GetCalculationByID(c *gin.Context) {
	calc, err := s.taxCalcSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": calc})
}

func (s *Server) DeleteCalculation(c *gin.Context) {
	if err := s.taxCalcSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetStatement(c *gin.Context) {
	statement, err := s.taxCalcSvc.Statement(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": statement})
}
