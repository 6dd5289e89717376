package controller

import (
	"github.com/artpromedia/aivo-v5-sub004/internal/service"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	service *service.AnalyticsService
}

func NewAnalyticsController(s *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{service: s}
}

func (c *AnalyticsController) GetRegulationStats(ctx *gin.Context) {
	stats, err := c.service.GetRegulationStats(
		resolveLearnerID(ctx),
		util.ParseDateParam(ctx.Query("from")),
		util.ParseDateParam(ctx.Query("to")),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func (c *AnalyticsController) GetEmotionSummary(ctx *gin.Context) {
	summary, err := c.service.GetEmotionSummary(
		resolveLearnerID(ctx),
		util.ParseDateParam(ctx.Query("from")),
		util.ParseDateParam(ctx.Query("to")),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

func (c *AnalyticsController) GetRegulationStreak(ctx *gin.Context) {
	streak, err := c.service.GetRegulationStreak(resolveLearnerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"streakDays": streak})
}
