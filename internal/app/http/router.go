package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rewardservice/internal/app/http/handler"
	"rewardservice/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.POST("/scoring/runs", h.ScoreRun)
	r.GET("/scoring/runs/:issue_id", h.ScoreRuns)

	return r
}
