package check

import (
	"errors"
	"fmt"
	"os"
)

// Fail sets the result to failed status with a message.
func (r *Result) Fail(kind Kind, message string, err error) Result {
	r.Status = StatusFail
	r.Kind = kind
	r.Message = message
	r.Err = err
	return *r
}

// Failf sets the result to failed status with a formatted message.
func (r *Result) Failf(kind Kind, format string, args ...any) Result {
	return r.Fail(kind, fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}

// Warn sets the result to warning status with a message.
func (r *Result) Warn(kind Kind, message string) Result {
	r.Status = StatusWarn
	r.Kind = kind
	r.Message = message
	return *r
}

// Warnf sets the result to warning status with a formatted message.
func (r *Result) Warnf(kind Kind, format string, args ...any) Result {
	return r.Warn(kind, fmt.Sprintf(format, args...))
}

// Pass sets the result to passed status with a message.
func (r *Result) Pass(message string) Result {
	r.Status = StatusPass
	r.Kind = ""
	r.Message = message
	r.Err = nil
	return *r
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...any) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}

// KindOf maps a filesystem error onto the failure taxonomy.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, os.ErrNotExist):
		return KindMissingResource
	case errors.Is(err, os.ErrPermission):
		return KindPermissionDenied
	default:
		return KindInvalidValue
	}
}
