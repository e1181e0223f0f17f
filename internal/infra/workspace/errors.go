package workspace

import (
	"fmt"
	"net/http"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

// APIError is a non-2xx answer from the workspace API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("workspace api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("workspace api error: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap exposes domain.ErrLookup for missing databases and pages.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrLookup
	}
	return nil
}
