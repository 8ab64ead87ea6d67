package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
)

type companyPayload struct {
	Name         string  `json:"name"`
	RNC          string  `json:"rnc"`
	Address      string  `json:"address"`
	AdvanceITBIS float64 `json:"advance_itbis"`
}

func (s *Server) ListCompanies(c *gin.Context) {
	companies, err := s.companySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": companies})
}

func (s *Server) GetCompanyByID(c *gin.Context) {
	item, err := s.companySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) CreateCompany(c *gin.Context) {
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.companySvc.Create(c.Request.Context(), companydomain.CreateCompanyRequest{
		Name:         payload.Name,
		RNC:          payload.RNC,
		Address:      payload.Address,
		AdvanceITBIS: payload.AdvanceITBIS,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) UpdateCompany(c *gin.Context) {
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateCompanyRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Name:         payload.Name,
		RNC:          payload.RNC,
		Address:      payload.Address,
		AdvanceITBIS: payload.AdvanceITBIS,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteCompany(c *gin.Context) {
	if err := s.companySvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
