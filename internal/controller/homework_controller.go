package controller

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/internal/service"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type HomeworkController struct {
	service *service.HomeworkService
	storage *service.StorageService
}

func NewHomeworkController(s *service.HomeworkService, storage *service.StorageService) *HomeworkController {
	return &HomeworkController{service: s, storage: storage}
}

type CreateSessionRequest struct {
	Title            string               `json:"title" binding:"required"`
	Subject          string               `json:"subject"`
	GradeLevel       string               `json:"gradeLevel"`
	DifficultyMode   model.DifficultyMode `json:"difficultyMode"`
	ParentAssistMode bool                 `json:"parentAssistMode"`
	MaxHintsPerStep  int                  `json:"maxHintsPerStep"`
}

type UpdateSessionRequest struct {
	Title              *string               `json:"title"`
	Subject            *string               `json:"subject"`
	GradeLevel         *string               `json:"gradeLevel"`
	DifficultyMode     *model.DifficultyMode `json:"difficultyMode"`
	ParentAssistMode   *bool                 `json:"parentAssistMode"`
	Status             *model.SessionStatus  `json:"status"`
	ProblemAnalysis    *string               `json:"problemAnalysis"`
	SolutionPlan       *string               `json:"solutionPlan"`
	FinalAnswer        *string               `json:"finalAnswer"`
	VerificationResult *string               `json:"verificationResult"`
	CompletedAt        *time.Time            `json:"completedAt"`
}

type DispenseHintRequest struct {
	HintType string `json:"hintType" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

type HintFeedbackRequest struct {
	WasHelpful *bool `json:"wasHelpful" binding:"required"`
}

type UpdateFileOcrRequest struct {
	OcrStatus     *model.OcrStatus `json:"ocrStatus"`
	ExtractedText *string          `json:"extractedText"`
	OcrConfidence *float64         `json:"ocrConfidence"`
	OcrMetadata   datatypes.JSON   `json:"ocrMetadata"`
}

type CreateWorkProductRequest struct {
	Step       model.SessionStatus `json:"step" binding:"required"`
	InputType  string              `json:"inputType"`
	InputData  datatypes.JSON      `json:"inputData"`
	OutputData datatypes.JSON      `json:"outputData"`
	Confidence *float64            `json:"confidence"`
}

type WorkProductCompletionRequest struct {
	IsComplete *bool `json:"isComplete" binding:"required"`
}

func (c *HomeworkController) CreateSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.service.CreateSession(service.CreateSessionInput{
		LearnerID:        resolveLearnerID(ctx),
		Title:            req.Title,
		Subject:          req.Subject,
		GradeLevel:       req.GradeLevel,
		DifficultyMode:   req.DifficultyMode,
		ParentAssistMode: req.ParentAssistMode,
		MaxHintsPerStep:  req.MaxHintsPerStep,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

func (c *HomeworkController) GetSession(ctx *gin.Context) {
	includeChildren := ctx.DefaultQuery("include", "true") != "false"

	session, err := c.service.GetSession(ctx.Param("id"), includeChildren)
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

func (c *HomeworkController) ListSessions(ctx *gin.Context) {
	var status *model.SessionStatus
	if s := ctx.Query("status"); s != "" {
		v := model.SessionStatus(s)
		status = &v
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	sessions, total, err := c.service.ListSessions(resolveLearnerID(ctx), status, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:   sessions,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (c *HomeworkController) UpdateSession(ctx *gin.Context) {
	var req UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.service.UpdateSession(ctx.Param("id"), service.UpdateSessionInput{
		Title:              req.Title,
		Subject:            req.Subject,
		GradeLevel:         req.GradeLevel,
		DifficultyMode:     req.DifficultyMode,
		ParentAssistMode:   req.ParentAssistMode,
		Status:             req.Status,
		ProblemAnalysis:    req.ProblemAnalysis,
		SolutionPlan:       req.SolutionPlan,
		FinalAnswer:        req.FinalAnswer,
		VerificationResult: req.VerificationResult,
		CompletedAt:        req.CompletedAt,
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

func (c *HomeworkController) DeleteSession(ctx *gin.Context) {
	if err := c.service.DeleteSession(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *HomeworkController) DispenseHint(ctx *gin.Context) {
	var req DispenseHintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hint, err := c.service.DispenseHint(ctx.Param("id"), req.HintType, req.Content)
	if err != nil {
		if errors.Is(err, util.ErrHintLimitReached) {
			util.Error(ctx, http.StatusTooManyRequests, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if hint == nil {
		util.NotFound(ctx)
		return
	}

	util.Created(ctx, hint)
}

func (c *HomeworkController) HintFeedback(ctx *gin.Context) {
	var req HintFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.service.MarkHintHelpful(ctx.Param("id"), *req.WasHelpful); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadFile stores the bytes through the storage provider, then appends
// the file row to the session.
func (c *HomeworkController) UploadFile(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	session, err := c.service.GetSession(sessionID, false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if session == nil {
		util.NotFound(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedUpload(header.Filename, contentType) {
		util.BadRequest(ctx, "unsupported file type")
		return
	}

	src, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	objectName := filepath.Join("homework", sessionID, model.GenerateUUID()+filepath.Ext(header.Filename))

	fileURL, err := c.storage.Upload(ctx.Request.Context(), objectName, src, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	file := &model.HomeworkFile{
		SessionID: sessionID,
		Filename:  header.Filename,
		MimeType:  contentType,
		FileURL:   fileURL,
		FileSize:  header.Size,
		InputType: ctx.DefaultPostForm("inputType", "photo"),
		OcrStatus: model.OcrPending,
	}
	if err := c.service.AddFile(file); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, file)
}

func (c *HomeworkController) ListFiles(ctx *gin.Context) {
	files, err := c.service.ListFiles(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}

// UpdateFileOcr is called by the OCR pipeline, not by learners.
func (c *HomeworkController) UpdateFileOcr(ctx *gin.Context) {
	var req UpdateFileOcrRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := c.service.UpdateFileOcr(ctx.Param("id"), service.UpdateFileOcrInput{
		OcrStatus:     req.OcrStatus,
		ExtractedText: req.ExtractedText,
		OcrConfidence: req.OcrConfidence,
		OcrMetadata:   req.OcrMetadata,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if file == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, file)
}

func (c *HomeworkController) CreateWorkProduct(ctx *gin.Context) {
	var req CreateWorkProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	product, err := c.service.CreateWorkProduct(service.CreateWorkProductInput{
		SessionID:  ctx.Param("id"),
		Step:       req.Step,
		InputType:  req.InputType,
		InputData:  req.InputData,
		OutputData: req.OutputData,
		Confidence: req.Confidence,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, product)
}

func (c *HomeworkController) UpdateWorkProductCompletion(ctx *gin.Context) {
	var req WorkProductCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.service.UpdateWorkProductCompletion(ctx.Param("id"), *req.IsComplete); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *HomeworkController) GetLatestWorkProduct(ctx *gin.Context) {
	step := model.SessionStatus(ctx.Query("step"))
	if step == "" {
		util.BadRequest(ctx, "step is required")
		return
	}

	product, err := c.service.GetLatestWorkProduct(ctx.Param("id"), step)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if product == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, product)
}

func allowedUpload(filename, contentType string) bool {
	if strings.HasPrefix(contentType, util.MimeImage) || contentType == util.MimePDF {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range util.AllowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// resolveLearnerID is the learner the request operates on: learners act
// on themselves; guardians and admins may pass ?learnerId=.
func resolveLearnerID(ctx *gin.Context) uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0
	}
	if claims.Role == model.Learner {
		return claims.UserID
	}
	if id := util.MustParseUint(ctx.Query("learnerId")); id != 0 {
		return id
	}
	return claims.UserID
}
