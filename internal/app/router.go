package app

import (
	"betania_backend/docs"
	"betania_backend/internal/config"
	"betania_backend/internal/middleware"
	"betania_backend/internal/model"
	"betania_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	if cfg.Metrics.Enabled {
		router.GET("/metrics", monitoring.PrometheusHandler())
	}

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerCourseRoutes(authGroup, c)
		a.registerExamRoutes(authGroup, c)
		authGroup.GET("/user/estadisticas", c.course.GetUserStats)
	}

	// 3. 教师与管理员路由
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Teacher))
	{
		adminGroup.POST("/cursos/:id/cache/invalidar", c.course.InvalidateCourseCache)
	}
}

func (a *App) registerCourseRoutes(rg *gin.RouterGroup, c *controllers) {
	cursos := rg.Group("/cursos")
	{
		cursos.GET("", c.course.ListCourses)
		cursos.GET("/:id", c.course.GetCourse)
		cursos.GET("/:id/modulos/:moduloId", c.course.GetModule)

		// 课时与课时测验
		cursos.GET("/leccion/:id", c.lesson.GetLesson)
		cursos.GET("/leccion/:id/prueba", c.lesson.GetQuiz)
		cursos.POST("/leccion/:id/prueba/responder", c.lesson.SubmitQuiz)
		cursos.POST("/leccion/:id/completar", c.lesson.CompleteLesson)
	}
}

func (a *App) registerExamRoutes(rg *gin.RouterGroup, c *controllers) {
	examenes := rg.Group("/examenes")
	{
		examenes.GET("/intentos", c.attempt.ListAttempts)
		examenes.POST("/:id/intentos", c.attempt.CreateAttempt)
		examenes.POST("/intentos/:id/respuestas", c.attempt.SubmitAnswers)
		examenes.POST("/intentos/:id/finalizar", c.attempt.FinalizeAttempt)
	}
}
