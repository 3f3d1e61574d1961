package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type assignRequest struct {
	Emails []string `json:"emails" binding:"required,min=1"`
}

// @Summary Enroll in course
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, enrollment)
}

// @Summary Assign learners to course
// @Description Corporate administrators enroll a batch of learners by email.
// @Tags enrollment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id}/assign [post]
func (c *EnrollmentController) AssignLearners(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))

	var req assignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.AssignLearners(claims.UserID, courseID, claims.OrganizationID, req.Emails)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary My enrollments
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}
