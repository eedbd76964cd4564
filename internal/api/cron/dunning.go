package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/service"
)

// DunningHandler exposes the periodic jobs for external schedulers. The
// in-process scheduler calls the same services; the endpoints exist so an
// operator can trigger a run out of band.
type DunningHandler struct {
	dunning service.DunningService
	log     *logger.Logger
}

func NewDunningHandler(dunning service.DunningService, log *logger.Logger) *DunningHandler {
	return &DunningHandler{dunning: dunning, log: log}
}

// @Summary Run one dunning sweep over all unpaid invoices
// @Tags Cron
// @Produce json
// @Success 200 {object} service.SweepResult
// @Router /cron/dunning/sweep [post]
func (h *DunningHandler) TriggerSweep(c *gin.Context) {
	h.log.Infow("dunning sweep triggered via cron endpoint")

	result, err := h.dunning.Sweep(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
