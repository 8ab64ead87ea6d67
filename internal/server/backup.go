package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultBackupsKept = 10

func (s *Server) ListBackups(c *gin.Context) {
	backups, err := s.backups.List()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": backups})
}

func (s *Server) CreateBackup(c *gin.Context) {
	name, err := s.backups.Backup()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	keep := defaultBackupsKept
	if parsed, err := strconv.Atoi(c.Query("keep")); err == nil && parsed > 0 {
		keep = parsed
	}
	s.backups.Prune(keep)

	s.metrics.RecordBackupTaken()
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"name": name}})
}
