package assistant

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means no model credential is set. It is terminal for the request.
var ErrNotConfigured = errors.New("model api key is not configured, set ANTHROPIC_API_KEY in the environment")

// UpstreamError wraps a failed model endpoint call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return "API Error: model request failed"
	}
	return fmt.Sprintf("API Error: %s", e.Err.Error())
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err came from the model endpoint.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
