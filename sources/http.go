package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"go.uber.org/zap"

	"zonesync/common"
	"zonesync/config"
	"zonesync/log"
)

const maxReadEcho = 4 * 1024

// Echo service used when the config names no endpoint.
const defaultEchoEndpoint = "https://api.ipify.org"

type httpEcho struct {
	config.AddressHTTPConfig `mapstructure:",squash"`

	endpoint string
}

func (s *httpEcho) Typename() string {
	return "http"
}

func (s *httpEcho) Lookup(ctx context.Context) (result string, err error) {
	client := common.HTTPClient(ctx)
	timeout := time.Duration(s.Timeout)

	ctx = log.SWith(ctx, "endpoint", s.endpoint, "timeout", timeout)

	defer func() {
		if err == nil {
			log.S(ctx).Debugw("got address", "address", result)
		}
	}()

	if s.Timeout > 0 {
		tCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		ctx = tCtx
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.endpoint, nil)
	if err != nil {
		log.S(ctx).Errorw("new request failed", zap.Error(err))
		return "", &AddressError{Endpoint: s.endpoint, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		log.S(ctx).Warnw("connection failed", zap.Error(err))
		return "", &AddressError{Endpoint: s.endpoint, Err: err}
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.S(ctx).Warnw("close body failed", zap.Error(err))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.S(ctx).Warnw("unexpected status", "status", resp.StatusCode)
		return "", &AddressError{Endpoint: s.endpoint, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReadEcho))
	if err != nil {
		log.S(ctx).Warnw("receiving response failed", zap.Error(err))
		return "", &AddressError{Endpoint: s.endpoint, Err: err}
	}

	addr := strings.TrimSpace(string(data))
	nip, err := netip.ParseAddr(addr)
	if err != nil {
		log.S(ctx).Warnw("no IP found in response", log.ByteField("body", data))
		return "", &AddressError{Endpoint: s.endpoint, Err: fmt.Errorf("no IP found in response")}
	}

	if !nip.Is4() {
		log.S(ctx).Warnw("not an IPv4 address", "address", addr)
		return "", &AddressError{Endpoint: s.endpoint, Err: fmt.Errorf("not an IPv4 address: %s", addr)}
	}

	// Return the trimmed body verbatim, not nip.String(). A records are
	// compared by exact string equality downstream.
	return addr, nil
}

func newHTTP(ctx context.Context, address config.Address) (Interface, error) {
	ctx = log.SWith(ctx, "type", "http")

	s := &httpEcho{endpoint: address.Endpoint}
	if s.endpoint == "" {
		s.endpoint = defaultEchoEndpoint
	}

	if err := common.WeakDecodeMap(address.Config, s); err != nil {
		log.S(ctx).Errorw("bad config", zap.Error(err), "config", address.Config)
		return nil, fmt.Errorf(`bad config: %w`, err)
	}

	return s, nil
}
