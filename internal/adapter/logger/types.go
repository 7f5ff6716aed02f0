package logger

import "errors"

// ErrorInfo is the error field of a log line. Cause holds the innermost
// wrapped error when there is one.
type ErrorInfo struct {
	Msg   string `json:"msg"`
	Cause string `json:"cause,omitempty"`
}

func newErrorInfo(err error) ErrorInfo {
	info := ErrorInfo{Msg: err.Error()}
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(next) {
		info.Cause = next.Error()
	}
	return info
}
