package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/persistence"
)

type BackupHandler struct {
	backupper *persistence.Backupper
	log       *logger.Logger
}

func NewBackupHandler(backupper *persistence.Backupper, log *logger.Logger) *BackupHandler {
	return &BackupHandler{backupper: backupper, log: log}
}

// @Summary Write a snapshot backup now
// @Tags Cron
// @Produce json
// @Success 200 {object} map[string]string
// @Router /cron/backup [post]
func (h *BackupHandler) TriggerBackup(c *gin.Context) {
	if err := h.backupper.BackupOnce(); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
