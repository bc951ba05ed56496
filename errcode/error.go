// Package errcode provides layered error codes for the framework.
// Code format: MMBBBB (MM = module code, BBBB = business code).
package errcode

import (
	"fmt"
)

// LayeredError is a coded error with context data and a wrapped cause.
type LayeredError struct {
	module string                 // owning module name (hook, plugin, banlist)
	code   int                    // full code (MMBBBB, e.g. 200001)
	msgKey string                 // stable message key, e.g. "error.hook.duplicate_listener"
	msg    string                 // default human-readable message
	data   map[string]interface{} // context data
	cause  error                  // wrapped cause
}

// New creates a layered error.
// moduleCode: 10-99, businessCode: 0001-9999.
func New(moduleCode, businessCode int, module, msgKey, msg string) *LayeredError {
	return &LayeredError{
		module: module,
		code:   moduleCode*10000 + businessCode,
		msgKey: msgKey,
		msg:    msg,
		data:   make(map[string]interface{}),
	}
}

func (e *LayeredError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Code returns the full error code.
func (e *LayeredError) Code() int {
	return e.code
}

// Module returns the owning module name.
func (e *LayeredError) Module() string {
	return e.module
}

// MsgKey returns the stable message key.
func (e *LayeredError) MsgKey() string {
	return e.msgKey
}

// Message returns the default message.
func (e *LayeredError) Message() string {
	return e.msg
}

// Data returns the context data.
func (e *LayeredError) Data() map[string]interface{} {
	return e.data
}

// Cause returns the wrapped cause.
func (e *LayeredError) Cause() error {
	return e.cause
}

// Unwrap supports errors.Unwrap chains.
func (e *LayeredError) Unwrap() error {
	return e.cause
}

// WithMsg returns a copy with a replaced message.
func (e *LayeredError) WithMsg(msg string) *LayeredError {
	clone := *e
	clone.msg = msg
	return &clone
}

// WithMsgf returns a copy with a formatted message.
func (e *LayeredError) WithMsgf(format string, args ...interface{}) *LayeredError {
	clone := *e
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// WithData returns a copy with one context entry added.
func (e *LayeredError) WithData(key string, value interface{}) *LayeredError {
	clone := *e
	clone.data = e.cloneData()
	clone.data[key] = value
	return &clone
}

// WithFields returns a copy with several context entries added.
func (e *LayeredError) WithFields(fields map[string]interface{}) *LayeredError {
	clone := *e
	clone.data = e.cloneData()
	for k, v := range fields {
		clone.data[k] = v
	}
	return &clone
}

// Wrap returns a copy wrapping cause.
func (e *LayeredError) Wrap(cause error) *LayeredError {
	if cause == nil {
		return e
	}
	clone := *e
	clone.cause = cause
	return &clone
}

// Wrapf returns a copy wrapping cause with a formatted message.
func (e *LayeredError) Wrapf(cause error, format string, args ...interface{}) *LayeredError {
	if cause == nil {
		return e.WithMsgf(format, args...)
	}
	clone := *e
	clone.cause = cause
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// Is matches by code so errors.Is works across WithData/Wrap copies.
func (e *LayeredError) Is(target error) bool {
	t, ok := target.(*LayeredError)
	if !ok {
		return false
	}
	return e.code == t.code
}

func (e *LayeredError) cloneData() map[string]interface{} {
	data := make(map[string]interface{}, len(e.data))
	for k, v := range e.data {
		data[k] = v
	}
	return data
}

// String returns a debug representation.
func (e *LayeredError) String() string {
	if e.cause != nil {
		return fmt.Sprintf("LayeredError{code:%d, module:%s, msg:%s, cause:%v}",
			e.code, e.module, e.msg, e.cause)
	}
	return fmt.Sprintf("LayeredError{code:%d, module:%s, msg:%s}",
		e.code, e.module, e.msg)
}
