package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/services"
)

type Handler interface {
	HandleRequestLog(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleToggleTaskStatus(c *gin.Context)
	HandleSetTaskPriority(c *gin.Context)
	HandleReorderTasks(c *gin.Context)
	HandleSetTasks(c *gin.Context)

	HandleAddSubtask(c *gin.Context)
	HandleToggleSubtask(c *gin.Context)
	HandleDeleteSubtask(c *gin.Context)

	HandleGetSelection(c *gin.Context)
	HandleToggleSelection(c *gin.Context)
	HandleSelectTasks(c *gin.Context)
	HandleDeselectAll(c *gin.Context)
	HandleCompleteSelected(c *gin.Context)
	HandleSetSelectedPriority(c *gin.Context)
	HandleToggleSelectedStatus(c *gin.Context)
	HandleDeleteSelected(c *gin.Context)

	HandleGetCounts(c *gin.Context)
	HandleGetNotifications(c *gin.Context)
	HandleExportCSV(c *gin.Context)
	HandleExportYAML(c *gin.Context)

	HandleGetTheme(c *gin.Context)
	HandleSetTheme(c *gin.Context)
	HandleToggleTheme(c *gin.Context)

	HandleEvents(c *gin.Context)
}

type handlerImpl struct {
	logger        zerolog.Logger
	tasks         services.TaskStore
	theme         services.ThemeService
	notifications services.NotificationService
}

func New(
	logger zerolog.Logger,
	taskStore services.TaskStore,
	themeService services.ThemeService,
	notificationService services.NotificationService,
) Handler {
	return &handlerImpl{
		logger:        logger,
		tasks:         taskStore,
		theme:         themeService,
		notifications: notificationService,
	}
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.PUT("", h.HandleSetTasks)
	tasksRouter.PUT("/order", h.HandleReorderTasks)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PATCH("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
	tasksRouter.POST("/:id/toggle", h.HandleToggleTaskStatus)
	tasksRouter.PUT("/:id/priority", h.HandleSetTaskPriority)
	tasksRouter.POST("/:id/subtasks", h.HandleAddSubtask)
	tasksRouter.POST("/:id/subtasks/:subtaskId/toggle", h.HandleToggleSubtask)
	tasksRouter.DELETE("/:id/subtasks/:subtaskId", h.HandleDeleteSubtask)

	selectionRouter := router.Group("/selection")
	selectionRouter.GET("", h.HandleGetSelection)
	selectionRouter.POST("", h.HandleSelectTasks)
	selectionRouter.DELETE("", h.HandleDeselectAll)
	selectionRouter.POST("/toggle/:id", h.HandleToggleSelection)
	selectionRouter.POST("/complete", h.HandleCompleteSelected)
	selectionRouter.POST("/priority", h.HandleSetSelectedPriority)
	selectionRouter.POST("/toggle-status", h.HandleToggleSelectedStatus)
	selectionRouter.DELETE("/tasks", h.HandleDeleteSelected)

	router.GET("/counts", h.HandleGetCounts)
	router.GET("/notifications", h.HandleGetNotifications)
	router.GET("/export.csv", h.HandleExportCSV)
	router.GET("/export.yaml", h.HandleExportYAML)

	themeRouter := router.Group("/theme")
	themeRouter.GET("", h.HandleGetTheme)
	themeRouter.PUT("", h.HandleSetTheme)
	themeRouter.POST("/toggle", h.HandleToggleTheme)

	router.GET("/events", h.HandleEvents)
}
