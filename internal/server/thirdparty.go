package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	thirdpartydomain "github.com/quisqueyalabs/contalibro/internal/thirdparty/domain"
)

func (s *Server) SearchThirdParties(c *gin.Context) {
	searchBy := strings.TrimSpace(c.DefaultQuery("by", thirdpartydomain.SearchByName))

	results, err := s.thirdPartySvc.Search(c.Request.Context(), thirdpartydomain.SearchRequest{
		Query:    c.Query("q"),
		SearchBy: searchBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}
