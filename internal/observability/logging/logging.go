package logging

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Module names the component a log line originates from.
type Module string

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type contextKey int

const (
	requestIDKey contextKey = iota
	moduleKey
)

const RequestIDHeader = "x-request-id"

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFromContext(ctx context.Context) (Module, bool) {
	m, ok := ctx.Value(moduleKey).(Module)
	return m, ok
}

// ValidateAndExtractRequestID returns the given id when it is safe to
// propagate, otherwise a fresh UUIDv7.
func ValidateAndExtractRequestID(requestID string) string {
	requestID = strings.TrimSpace(requestID)
	if requestIDPattern.MatchString(requestID) {
		return requestID
	}
	return NewRequestID()
}

func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
