package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pantrylens/backend/internal/domain"
)

const (
	httpSinkTimeout = 5 * time.Second
	httpSinkRetries = 2
)

// HTTPSink posts decisions as JSON to an analytics collector endpoint.
// Delivery is best-effort; the caller swallows errors.
type HTTPSink struct {
	client   *resty.Client
	endpoint string
}

// NewHTTPSink creates a sink posting to the given endpoint.
func NewHTTPSink(endpoint string) *HTTPSink {
	client := resty.New().
		SetTimeout(httpSinkTimeout).
		SetRetryCount(httpSinkRetries).
		SetHeader("User-Agent", "pantrylens-backend/1.0")
	return &HTTPSink{client: client, endpoint: endpoint}
}

// Record posts one decision.
func (s *HTTPSink) Record(ctx context.Context, d domain.OrPatternDecision) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(d).
		Post(s.endpoint)
	if err != nil {
		return fmt.Errorf("post decision: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("post decision: status %d", resp.StatusCode())
	}
	return nil
}
