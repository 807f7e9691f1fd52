package dto

import (
	"time"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// LogQueryRequest filters stored request and audit log entries.
//
// @Description Log query filters. Times are RFC 3339.
type LogQueryRequest struct {
	RequestID  string     `form:"request_id"`
	SessionID  string     `form:"session_id"`
	ActionType string     `form:"action_type" example:"add_to_cart"`
	Level      string     `form:"level" binding:"omitempty,oneof=debug info warn error fatal panic" example:"error"`
	Method     string     `form:"method" example:"POST"`
	Path       string     `form:"path" example:"/api/wizard"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit" binding:"omitempty,gte=0" example:"100"`
	Skip       int        `form:"skip" binding:"omitempty,gte=0"`
} // @name LogQueryRequest

// ErrInvalidLogRange is returned when to lies before from.
var ErrInvalidLogRange = &ValidationError{Field: "to", Message: "must not be before from"}

// Validate implements http.Validator.
func (r *LogQueryRequest) Validate() error {
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return ErrInvalidLogRange
	}
	return nil
}

// Options converts the request into repository query options.
func (r *LogQueryRequest) Options() model.LogQueryOptions {
	return model.LogQueryOptions{
		RequestID:  r.RequestID,
		SessionID:  r.SessionID,
		ActionType: r.ActionType,
		Level:      r.Level,
		Method:     r.Method,
		Path:       r.Path,
		StartTime:  r.From,
		EndTime:    r.To,
		Limit:      r.Limit,
		Skip:       r.Skip,
	}
}

// LogPage is one page of log entries, newest first.
//
// @Description A page of log entries
type LogPage struct {
	Entries []model.LogEntry `json:"entries"`
	// Total counts every entry matching the filters, not only this page
	Total int64 `json:"total" example:"250"`
	Limit int   `json:"limit" example:"100"`
	Skip  int   `json:"skip" example:"0"`
} // @name LogPage
