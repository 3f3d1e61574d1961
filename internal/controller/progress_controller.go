package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Report lecture progress
// @Description Partial update of the learner's progress on one lecture; fields
// not present in the body are left untouched.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/lectures/{id}/progress [post]
func (c *ProgressController) ReportProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lectureID := util.MustParseUint(ctx.Param("id"))
	if lectureID == 0 {
		util.BadRequest(ctx, "invalid lecture id")
		return
	}

	var report service.LectureProgressReport
	if err := ctx.ShouldBindJSON(&report); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.ReportLectureOutcome(claims.UserID, lectureID, report)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Course progress
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))

	progress, err := c.ProgressService.GetCourseProgress(claims.UserID, courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
