package domain

import "fmt"

// UpstreamHTTPError reports a failed call to the country directory.
type UpstreamHTTPError struct {
	Upstream   string
	StatusCode int
	Err        error
}

func (e *UpstreamHTTPError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s returned status %d: %v", e.Upstream, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s returned status %d", e.Upstream, e.StatusCode)
	default:
		return fmt.Sprintf("%s request failed: %v", e.Upstream, e.Err)
	}
}

func (e *UpstreamHTTPError) Unwrap() error {
	return e.Err
}

// ProviderError reports any failure of the search provider, including
// errors the provider describes in an otherwise well-formed response.
type ProviderError struct {
	Engine     string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("search provider (%s) returned status %d: %s", e.Engine, e.StatusCode, msg)
	}
	return fmt.Sprintf("search provider (%s): %s", e.Engine, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
