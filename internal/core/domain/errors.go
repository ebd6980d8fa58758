package domain

import "errors"

var (
	ErrUnauthenticated            = errors.New("unauthenticated")
	ErrForbidden                  = errors.New("forbidden")
	ErrTaskNotFound               = errors.New("task not found")
	ErrUserNotFound               = errors.New("user not found")
	ErrManagerNotFound            = errors.New("manager not found")
	ErrUserAlreadyExists          = errors.New("user already exists")
	ErrTaskNotFoundOrUnauthorized = errors.New("task not found or not assigned to caller")
	ErrInvalidAssignment          = errors.New("invalid assignment")
	ErrConflictingAssignment      = errors.New("self-task not allowed when a task is already scheduled that day")
	ErrValidation                 = errors.New("validation failed")
)
