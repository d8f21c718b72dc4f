package common

import (
	"context"
	"net/http"
)

type httpClientKeyType struct{}

// HTTPClientKey overrides the http.Client used for outbound calls. Both the
// address sources and the DNS provider honor it, so transport concerns like
// timeouts and proxies are configured in one place by the caller.
var HTTPClientKey httpClientKeyType

// HTTPClient returns the client installed in ctx, or http.DefaultClient.
func HTTPClient(ctx context.Context) *http.Client {
	if c, _ := ctx.Value(HTTPClientKey).(*http.Client); c != nil {
		return c
	}

	return http.DefaultClient
}
