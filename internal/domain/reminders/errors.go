package reminders

import "errors"

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrDueDateRequired  = errors.New("due date is required")
)
