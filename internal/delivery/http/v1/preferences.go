package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/export"
	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

func (h *handlerImpl) HandleGetCounts(c *gin.Context) {
	today, ok := h.parseToday(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, views.CountByCategory(h.tasks.Tasks(), today))
}

func (h *handlerImpl) HandleGetNotifications(c *gin.Context) {
	today, ok := h.parseToday(c)
	if !ok {
		return
	}

	notices, err := h.notifications.Pending(c, today)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to record notices")
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, notices)
}

func (h *handlerImpl) HandleExportCSV(c *gin.Context) {
	h.export(c, export.FormatCSV)
}

func (h *handlerImpl) HandleExportYAML(c *gin.Context) {
	h.export(c, export.FormatYAML)
}

func (h *handlerImpl) export(c *gin.Context, format export.Format) {
	tasks := h.tasks.Tasks()

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", `attachment; filename="`+format.FileName()+`"`)
	c.Status(http.StatusOK)

	err := export.Write(c.Writer, format, tasks)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("format", string(format)).
			Msg("failed to write export")
		return
	}

	h.logger.Info().
		Str("format", string(format)).
		Int("count", len(tasks)).
		Msg("exported tasks")
}

type themeResponse struct {
	Theme models.Theme `json:"theme"`
}

type setThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

func (h *handlerImpl) HandleGetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, themeResponse{Theme: h.theme.Theme(c)})
}

func (h *handlerImpl) HandleSetTheme(c *gin.Context) {
	var req setThemeRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.theme.SetTheme(c, models.Theme(req.Theme))
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, themeResponse{Theme: h.theme.Theme(c)})
}

func (h *handlerImpl) HandleToggleTheme(c *gin.Context) {
	theme, err := h.theme.ToggleTheme(c)
	if err != nil {
		abort(c, newDomainError(err))
		return
	}
	c.JSON(http.StatusOK, themeResponse{Theme: theme})
}

// parseToday reads the optional today query parameter, falling back to the
// server's local date.
func (h *handlerImpl) parseToday(c *gin.Context) (time.Time, bool) {
	raw := c.Query("today")
	if raw == "" {
		return time.Now(), true
	}

	date, err := models.ParseDate(raw)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("today", raw).
			Msg("invalid today parameter")
		abort(c, newBadRequestError(errInvalidTodayParam.Error()))
		return time.Time{}, false
	}
	return time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.Local), true
}
