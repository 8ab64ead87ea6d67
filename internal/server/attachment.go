package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AttachFile stores the uploaded file for an invoice. The upload replaces
// any previous attachment reference on the invoice.
func (s *Server) AttachFile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	defer file.Close()

	path, key, err := s.attachments.Attach(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"attachment_path": path,
		"attachment_key":  key,
	}})
}
