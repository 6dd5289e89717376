package controller

import (
	"strconv"

	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/internal/service"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type EmotionController struct {
	service *service.EmotionService
}

func NewEmotionController(s *service.EmotionService) *EmotionController {
	return &EmotionController{service: s}
}

type LogEmotionRequest struct {
	Emotion      string         `json:"emotion" binding:"required"`
	Level        int            `json:"level" binding:"required,min=1,max=5"`
	Trigger      string         `json:"trigger"`
	Strategy     string         `json:"strategy"`
	Context      datatypes.JSON `json:"context"`
	Source       string         `json:"source"`
	NotifyParent *bool          `json:"notifyParent"`
}

func (c *EmotionController) LogEmotion(ctx *gin.Context) {
	var req LogEmotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.service.LogEmotion(service.LogEmotionInput{
		LearnerID:    resolveLearnerID(ctx),
		Emotion:      req.Emotion,
		Level:        req.Level,
		Trigger:      req.Trigger,
		Strategy:     req.Strategy,
		Context:      req.Context,
		Source:       req.Source,
		NotifyParent: req.NotifyParent,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, entry)
}

func (c *EmotionController) GetHistory(ctx *gin.Context) {
	filter := repository.EmotionHistoryFilter{
		From: util.ParseDateParam(ctx.Query("from")),
		To:   util.ParseDateParam(ctx.Query("to")),
	}
	if s := ctx.Query("emotion"); s != "" {
		filter.Emotion = &s
	}
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	entries, total, err := c.service.GetHistory(resolveLearnerID(ctx), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:   entries,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (c *EmotionController) GetRecent(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.service.GetRecent(resolveLearnerID(ctx), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

func (c *EmotionController) GetEntry(ctx *gin.Context) {
	entry, err := c.service.GetByID(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if entry == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, entry)
}

// GetDistressAlerts returns the notify-parent check-ins from the last 24
// hours, for the guardian dashboard.
func (c *EmotionController) GetDistressAlerts(ctx *gin.Context) {
	entries, err := c.service.GetUnreadDistressAlerts(resolveLearnerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
