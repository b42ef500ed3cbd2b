package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidTodayParam  = errors.New("today must be a YYYY-MM-DD date")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// newDomainError maps store errors onto response statuses. A persistence
// failure still means the change was applied in memory.
func newDomainError(err error) apiError {
	var persistErr *services.PersistenceError
	switch {
	case errors.Is(err, models.ErrValidation):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubtaskNotFound):
		return newNotFoundError(err.Error())
	case errors.As(err, &persistErr):
		return newAPIError(
			http.StatusInternalServerError,
			"change applied but not saved: "+persistErr.Err.Error(),
		)
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
