package zonesync

import "strings"

// FQDN appends the trailing dot that makes a name absolute. Idempotent.
func FQDN(domain string) string {
	if strings.HasSuffix(domain, ".") {
		return domain
	}

	return domain + "."
}

// HostFQDN builds the fully qualified record name for a host entry. An empty
// subdomain means the bare zone carries the record.
func HostFQDN(subdomain, zone string) string {
	if subdomain == "" {
		return FQDN(zone)
	}

	return FQDN(subdomain + "." + zone)
}
