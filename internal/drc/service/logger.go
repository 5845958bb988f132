package service

import (
	"context"
	"log"
)

// Logger prefixes log lines with the request ID carried in the context, so
// one analysis run can be traced across the handler and service layers.
type Logger struct {
	requestID string
}

// NewLogger creates a logger bound to the request in ctx. Requests arriving
// outside HTTP (CLI, tests) log with request_id=unknown.
func NewLogger(ctx context.Context) *Logger {
	requestID := "unknown"
	if rid, ok := ctx.Value("request_id").(string); ok && rid != "" {
		requestID = rid
	}
	return &Logger{requestID: requestID}
}

// LogError logs an error with context.
func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

// LogInfof logs a formatted info message with context.
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

// LogWarnf logs a formatted warning with context.
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
