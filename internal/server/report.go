package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) MonthlyPDF(c *gin.Context) {
	companyID := strings.TrimSpace(c.Query("company_id"))
	if companyID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	filter, err := parsePeriodFilter(c.Query("month"), c.Query("year"), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pdfBytes, err := s.reportSvc.MonthlySummaryPDF(c.Request.Context(), companyID, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordReportRendered("pdf")
	sendFile(c, fmt.Sprintf("resumen-%02d-%d.pdf", filter.Month, filter.Year), contentTypePDF, pdfBytes)
}

func (s *Server) MonthlyWorkbook(c *gin.Context) {
	companyID := strings.TrimSpace(c.Query("company_id"))
	if companyID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	filter, err := parsePeriodFilter(c.Query("month"), c.Query("year"), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	workbook, err := s.reportSvc.MonthlyWorkbook(c.Request.Context(), companyID, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordReportRendered("xlsx")
	sendFile(c, fmt.Sprintf("resumen-%02d-%d.xlsx", filter.Month, filter.Year), contentTypeXLSX, workbook)
}

func (s *Server) RetentionPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	multiCurrency, _ := strconv.ParseBool(c.Query("multi_currency"))

	render := s.reportSvc.RetentionPDF
	if multiCurrency {
		render = s.reportSvc.RetentionMultiCurrencyPDF
	}

	pdfBytes, err := render(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordReportRendered("pdf")
	sendFile(c, "retencion-"+id+".pdf", contentTypePDF, pdfBytes)
}

func sendFile(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
