package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/insuranceguard/insuranceguard/internal/api/dto"
	"github.com/insuranceguard/insuranceguard/internal/domain/audit"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
)

type AuditHandler struct {
	repo audit.Repository
	log  *logger.Logger
}

func NewAuditHandler(repo audit.Repository, log *logger.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, log: log}
}

// @Summary List action log entries, newest first
// @Tags Audit
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /audit [get]
func (h *AuditHandler) GetEntries(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.Error(ierr.NewError("invalid limit").
				WithHint("Limit must be a non-negative integer").
				Mark(ierr.ErrValidation))
			return
		}
		limit = parsed
	}

	entries, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.ListAuditEntriesResponse{
		Items: lo.Map(entries, func(e *audit.Entry, _ int) *dto.AuditEntryResponse {
			return dto.NewAuditEntryResponse(e)
		}),
		Total: len(entries),
	})
}
