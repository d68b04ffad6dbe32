package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rewardservice/internal/domain/reward"
)

type Handler struct {
	RewardSvc reward.Service
	Log       *zap.Logger
}

func New(rewardSvc reward.Service, log *zap.Logger) *Handler {
	return &Handler{
		RewardSvc: rewardSvc,
		Log:       log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
