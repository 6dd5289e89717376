package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/internal/service"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RegulationController struct {
	service *service.RegulationService
}

func NewRegulationController(s *service.RegulationService) *RegulationController {
	return &RegulationController{service: s}
}

type StartRegulationRequest struct {
	ActivityID         string             `json:"activityId" binding:"required"`
	ActivityType       model.ActivityType `json:"activityType"` // resolved from the catalog when omitted
	EmotionBefore      *string            `json:"emotionBefore"`
	EmotionLevelBefore *int               `json:"emotionLevelBefore"`
	TriggeredBy        string             `json:"triggeredBy"`
	Context            datatypes.JSON     `json:"context"`
}

type UpdateRegulationRequest struct {
	EmotionAfter      *string    `json:"emotionAfter"`
	EmotionLevelAfter *int       `json:"emotionLevelAfter"`
	DurationSeconds   *int       `json:"durationSeconds"`
	Completed         *bool      `json:"completed"`
	Effectiveness     *int       `json:"effectiveness"`
	Notes             *string    `json:"notes"`
	CompletedAt       *time.Time `json:"completedAt"`
}

func (c *RegulationController) StartSession(ctx *gin.Context) {
	var req StartRegulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.service.StartSession(service.StartRegulationInput{
		LearnerID:          resolveLearnerID(ctx),
		ActivityID:         req.ActivityID,
		ActivityType:       req.ActivityType,
		EmotionBefore:      req.EmotionBefore,
		EmotionLevelBefore: req.EmotionLevelBefore,
		TriggeredBy:        req.TriggeredBy,
		Context:            req.Context,
	})
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

func (c *RegulationController) UpdateSession(ctx *gin.Context) {
	var req UpdateRegulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.service.UpdateSession(ctx.Param("id"), service.UpdateRegulationInput{
		EmotionAfter:      req.EmotionAfter,
		EmotionLevelAfter: req.EmotionLevelAfter,
		DurationSeconds:   req.DurationSeconds,
		Completed:         req.Completed,
		Effectiveness:     req.Effectiveness,
		Notes:             req.Notes,
		CompletedAt:       req.CompletedAt,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if session == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, session)
}

func (c *RegulationController) ListSessions(ctx *gin.Context) {
	filter := repository.RegulationSessionFilter{
		From: util.ParseDateParam(ctx.Query("from")),
		To:   util.ParseDateParam(ctx.Query("to")),
	}
	if s := ctx.Query("activityType"); s != "" {
		v := model.ActivityType(s)
		filter.ActivityType = &v
	}
	if s := ctx.Query("completed"); s != "" {
		v := s == "true"
		filter.Completed = &v
	}
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	sessions, total, err := c.service.ListSessions(resolveLearnerID(ctx), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:   sessions,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (c *RegulationController) GetRecent(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))

	sessions, err := c.service.GetRecent(resolveLearnerID(ctx), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

func (c *RegulationController) GetSession(ctx *gin.Context) {
	session, err := c.service.GetByID(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

func (c *RegulationController) ListActivities(ctx *gin.Context) {
	activities, err := c.service.ListActivities()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, activities)
}
