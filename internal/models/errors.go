package models

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

var (
	ErrTaskIDRequired      = fmt.Errorf("%w: task id is required", ErrValidation)
	ErrTaskTitleRequired   = fmt.Errorf("%w: task title is required", ErrValidation)
	ErrSubtaskIDRequired   = fmt.Errorf("%w: subtask id is required", ErrValidation)
	ErrSubtaskTextRequired = fmt.Errorf("%w: subtask text is required", ErrValidation)
	ErrDuplicateSubtaskID  = fmt.Errorf("%w: duplicate subtask id", ErrValidation)
	ErrDuplicateTaskID     = fmt.Errorf("%w: duplicate task id", ErrValidation)
	ErrInvalidPriority     = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidStatus       = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidRepeat       = fmt.Errorf("%w: invalid repeat", ErrValidation)
	ErrInvalidDueDate      = fmt.Errorf("%w: invalid due date", ErrValidation)
	ErrInvalidTheme        = fmt.Errorf("%w: invalid theme", ErrValidation)
)
