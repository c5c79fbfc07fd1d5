package utils

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so adapters can call the resty API directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client rooted at baseURL. A zero timeout
// leaves resty's default (no timeout) in place.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}

// JSON starts a request whose response body is decoded as JSON whatever
// Content-Type the server sends.
func (c *HTTPClient) JSON(ctx context.Context) *resty.Request {
	return c.R().SetContext(ctx).ForceContentType("application/json")
}
