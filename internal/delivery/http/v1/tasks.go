package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	query, err := views.ParseQuery(
		c.Query("status"),
		c.Query("search"),
		c.Query("sort"),
		c.Query("dir"),
	)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid view query")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	tasks := views.Apply(h.tasks.Tasks(), query)
	h.logger.Debug().
		Int("count", len(tasks)).
		Str("status", string(query.Status)).
		Str("sort", string(query.SortKey)).
		Msg("derived task view")

	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.Task(c.Param("id"))
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

type createTaskRequest struct {
	Title    string           `json:"title" binding:"required,max=255"`
	DueDate  *models.Date     `json:"dueDate"`
	Priority models.Priority  `json:"priority"`
	Notes    string           `json:"notes"`
	Repeat   models.Repeat    `json:"repeat"`
	Subtasks []models.Subtask `json:"subtasks"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.AddTask(c, services.TaskDraft{
		Title:    req.Title,
		DueDate:  req.DueDate,
		Priority: req.Priority,
		Notes:    req.Notes,
		Repeat:   req.Repeat,
		Subtasks: req.Subtasks,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to create task")
		abort(c, newDomainError(err))
		return
	}

	c.JSON(http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title    *string           `json:"title,omitempty"`
	DueDate  *string           `json:"dueDate,omitempty"`
	Priority *models.Priority  `json:"priority,omitempty"`
	Notes    *string           `json:"notes,omitempty"`
	Repeat   *models.Repeat    `json:"repeat,omitempty"`
	Subtasks *[]models.Subtask `json:"subtasks,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	id := c.Param("id")

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	if !h.taskExists(c, id) {
		return
	}

	err = h.tasks.UpdateTask(c, id, services.TaskPatch{
		Title:    req.Title,
		DueDate:  req.DueDate,
		Priority: req.Priority,
		Notes:    req.Notes,
		Repeat:   req.Repeat,
		Subtasks: req.Subtasks,
	})
	if err != nil {
		abort(c, newDomainError(err))
		return
	}

	h.respondWithTask(c, id)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	if !h.taskExists(c, id) {
		return
	}

	err := h.tasks.DeleteTask(c, id)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleToggleTaskStatus(c *gin.Context) {
	id := c.Param("id")
	if !h.taskExists(c, id) {
		return
	}

	err := h.tasks.ToggleTaskStatus(c, id)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	h.respondWithTask(c, id)
}

type priorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

func (h *handlerImpl) HandleSetTaskPriority(c *gin.Context) {
	id := c.Param("id")

	priority, ok := h.bindPriority(c)
	if !ok {
		return
	}
	if !h.taskExists(c, id) {
		return
	}

	err := h.tasks.SetTaskPriority(c, id, priority)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	h.respondWithTask(c, id)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (h *handlerImpl) HandleReorderTasks(c *gin.Context) {
	var req reorderRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.ReorderTasks(c, req.IDs)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Tasks())
}

func (h *handlerImpl) HandleSetTasks(c *gin.Context) {
	var tasks []models.Task
	err := c.ShouldBindJSON(&tasks)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.SetTasks(c, tasks)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Tasks())
}

type addSubtaskRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *handlerImpl) HandleAddSubtask(c *gin.Context) {
	id := c.Param("id")

	var req addSubtaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	if !h.taskExists(c, id) {
		return
	}

	subtask, err := h.tasks.AddSubtask(c, id, req.Text)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, subtask)
}

func (h *handlerImpl) HandleToggleSubtask(c *gin.Context) {
	id, subtaskID := c.Param("id"), c.Param("subtaskId")
	if !h.subtaskExists(c, id, subtaskID) {
		return
	}

	err := h.tasks.ToggleSubtaskStatus(c, id, subtaskID)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	h.respondWithTask(c, id)
}

func (h *handlerImpl) HandleDeleteSubtask(c *gin.Context) {
	id, subtaskID := c.Param("id"), c.Param("subtaskId")
	if !h.subtaskExists(c, id, subtaskID) {
		return
	}

	err := h.tasks.DeleteSubtask(c, id, subtaskID)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	h.respondWithTask(c, id)
}

// taskExists aborts with 404 when the task is absent. The store itself
// treats absent ids as no-ops.
func (h *handlerImpl) taskExists(c *gin.Context, id string) bool {
	_, err := h.tasks.Task(id)
	if err != nil {
		h.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		abort(c, newDomainError(err))
		return false
	}
	return true
}

func (h *handlerImpl) subtaskExists(c *gin.Context, id, subtaskID string) bool {
	task, err := h.tasks.Task(id)
	if err != nil {
		h.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		abort(c, newDomainError(err))
		return false
	}
	if task.SubtaskIndex(subtaskID) < 0 {
		h.logger.Warn().
			Str("task_id", id).
			Str("subtask_id", subtaskID).
			Msg("subtask not found")
		abort(c, newDomainError(services.ErrSubtaskNotFound))
		return false
	}
	return true
}

func (h *handlerImpl) respondWithTask(c *gin.Context, id string) {
	task, err := h.tasks.Task(id)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) bindPriority(c *gin.Context) (models.Priority, bool) {
	var req priorityRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return "", false
	}

	priority, err := models.ParsePriority(req.Priority)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid priority")
		abort(c, newDomainError(err))
		return "", false
	}
	return priority, true
}
