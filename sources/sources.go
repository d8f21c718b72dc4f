package sources

import (
	"context"
	"fmt"

	"zonesync/config"
)

// Interface yields the public address the records should point at. The
// address comes back as the literal string the source saw; no normalization
// happens here so that record comparison stays byte-exact.
type Interface interface {
	Lookup(ctx context.Context) (string, error)
	Typename() string
}

var Sources = map[string]func(ctx context.Context, address config.Address) (Interface, error){
	"http":   newHTTP,
	"static": newStatic,
}

// AddressError reports a failed public-address discovery. StatusCode is zero
// when the transport itself failed before a response arrived.
type AddressError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *AddressError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("address discovery failed: endpoint %q returned status %d", e.Endpoint, e.StatusCode)
	}

	return fmt.Sprintf("address discovery failed: endpoint %q: %v", e.Endpoint, e.Err)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}
