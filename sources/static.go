package sources

import (
	"context"
	"fmt"
	"net/netip"

	"zonesync/config"
	"zonesync/log"
)

// static serves a fixed address from the config. Useful for split-horizon
// setups and for exercising the pipeline without network access.
type static struct {
	address string
}

func (s *static) Typename() string {
	return "static"
}

func (s *static) Lookup(ctx context.Context) (string, error) {
	log.S(ctx).Debugw("got address", "address", s.address, "source_type", "static")
	return s.address, nil
}

func newStatic(ctx context.Context, address config.Address) (Interface, error) {
	ctx = log.SWith(ctx, "type", "static")

	nip, err := netip.ParseAddr(address.Endpoint)
	if err != nil || !nip.Is4() {
		log.S(ctx).Errorw("static source needs an IPv4 address in endpoint", "endpoint", address.Endpoint)
		return nil, fmt.Errorf("static source needs an IPv4 address, got %q", address.Endpoint)
	}

	return &static{address: address.Endpoint}, nil
}
