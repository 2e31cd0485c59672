package mail

import (
	"fmt"
	"net/http"
)

// ProviderError is a non-2xx response from the email provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("email provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("email provider returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether resending could succeed.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsClientError reports a 4xx other than 429, usually bad credentials or a
// template mismatch.
func (e *ProviderError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}
