package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary List published courses
// @Tags catalog
// @Produce json
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Course detail
// @Tags catalog
// @Produce json
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary Create course
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	organizationID := uint(0)
	if claims.OrganizationID != nil {
		organizationID = *claims.OrganizationID
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, organizationID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary Add section
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id}/sections [post]
func (c *CourseController) AddSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))

	var req service.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.CourseService.AddSection(claims.UserID, courseID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, section)
}

// @Summary Add lecture
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/sections/{id}/lectures [post]
func (c *CourseController) AddLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sectionID := util.MustParseUint(ctx.Param("id"))

	var req service.CreateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lecture, err := c.CourseService.AddLecture(claims.UserID, sectionID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, lecture)
}

// @Summary Publish course
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))

	course, err := c.CourseService.PublishCourse(claims.UserID, courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrLectureNotFound),
		errors.Is(err, util.ErrCertNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrCourseNotPublished),
		errors.Is(err, util.ErrCourseNotCompleted):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
