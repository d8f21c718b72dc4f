package zonesync

import "fmt"

// ZoneNotFoundError means the configured zone does not exist at the
// provider. A configuration problem, never retried.
type ZoneNotFoundError struct {
	Zone string
}

func (e *ZoneNotFoundError) Error() string {
	return fmt.Sprintf("zone %q not found at provider", e.Zone)
}

// ConflictError means more than one address record matched a name. Picking
// one to update would risk clobbering the wrong record, so the run refuses.
type ConflictError struct {
	Zone  string
	FQDN  string
	Count int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("inconsistent state: found %d address records for %q in zone %q", e.Count, e.FQDN, e.Zone)
}

// ProviderError wraps a rejected provider call with enough context for the
// caller to log it verbatim.
type ProviderError struct {
	Op   string
	Zone string
	FQDN string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.FQDN == "" {
		return fmt.Sprintf("provider %s failed for zone %q: %v", e.Op, e.Zone, e.Err)
	}

	return fmt.Sprintf("provider %s failed for %q in zone %q: %v", e.Op, e.FQDN, e.Zone, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
