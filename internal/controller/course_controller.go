package controller

import (
	"net/http"

	"betania_backend/internal/service"
	"betania_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Progress *service.ProgressService
}

func NewCourseController(progress *service.ProgressService) *CourseController {
	return &CourseController{Progress: progress}
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.CourseSummary
// @Router /api/cursos [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.Progress.ListCourses(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 课程详情及模块进度
// @Description 首次访问时初始化学员进度
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} service.CourseView
// @Failure 404 {object} util.ErrorResponse
// @Router /api/cursos/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.Progress.GetCourseView(ctx.Request.Context(), courseID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 模块详情
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param moduloId path int true "模块ID"
// @Success 200 {object} service.ModuleView
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/cursos/{id}/modulos/{moduloId} [get]
func (c *CourseController) GetModule(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(ctx, "moduloId")
	if !ok {
		return
	}

	view, err := c.Progress.GetModuleView(ctx.Request.Context(), courseID, moduleID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 学员学习统计
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.UserStats
// @Router /api/user/estadisticas [get]
func (c *CourseController) GetUserStats(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	stats, err := c.Progress.GetUserStats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 清除课程缓存
// @Description 课程结构在内容后台修改后调用，仅限教师和管理员
// @Tags 管理
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 204
// @Failure 403 {object} util.ErrorResponse
// @Router /api/admin/cursos/{id}/cache/invalidar [post]
func (c *CourseController) InvalidateCourseCache(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Progress.InvalidateCourseCache(ctx.Request.Context(), courseID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
