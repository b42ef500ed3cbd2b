package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type selectionResponse struct {
	IDs   []string      `json:"ids"`
	Tasks []models.Task `json:"tasks"`
}

func (h *handlerImpl) HandleGetSelection(c *gin.Context) {
	h.respondWithSelection(c)
}

func (h *handlerImpl) HandleToggleSelection(c *gin.Context) {
	id := c.Param("id")
	if !h.taskExists(c, id) {
		return
	}

	h.tasks.ToggleTaskSelection(id)
	h.respondWithSelection(c)
}

type selectTasksRequest struct {
	IDs []string `json:"ids"`
}

// HandleSelectTasks adds the given ids to the selection. Without ids every
// task is selected.
func (h *handlerImpl) HandleSelectTasks(c *gin.Context) {
	var req selectTasksRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	ids := req.IDs
	if len(ids) == 0 {
		for _, t := range h.tasks.Tasks() {
			ids = append(ids, t.ID)
		}
	}

	h.tasks.SelectAllTasks(ids)
	h.respondWithSelection(c)
}

func (h *handlerImpl) HandleDeselectAll(c *gin.Context) {
	h.tasks.DeselectAllTasks()
	h.respondWithSelection(c)
}

func (h *handlerImpl) HandleCompleteSelected(c *gin.Context) {
	err := h.tasks.MarkSelectedTasksComplete(c)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Tasks())
}

func (h *handlerImpl) HandleSetSelectedPriority(c *gin.Context) {
	priority, ok := h.bindPriority(c)
	if !ok {
		return
	}

	err := h.tasks.SetSelectedTasksPriority(c, priority)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Tasks())
}

func (h *handlerImpl) HandleToggleSelectedStatus(c *gin.Context) {
	err := h.tasks.ToggleSelectedTasksStatus(c)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Tasks())
}

func (h *handlerImpl) HandleDeleteSelected(c *gin.Context) {
	err := h.tasks.DeleteSelectedTasks(c)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Tasks())
}

func (h *handlerImpl) respondWithSelection(c *gin.Context) {
	c.JSON(http.StatusOK, selectionResponse{
		IDs:   h.tasks.SelectedTaskIDs(),
		Tasks: h.tasks.SelectedTasks(),
	})
}
