package provider

import (
	"context"

	"zonesync/config"
)

const TypeA = "A"

// Zone is a provider-managed domain container. Read-only to this tool.
type Zone struct {
	ID   string
	Name string
}

// Record is a single DNS entry inside a zone. Name is fully qualified.
type Record struct {
	ID    string
	Name  string
	Type  string
	Value string
}

// Interface is the minimal provider surface the sync core needs. A test
// double stands in for the real API in unit tests.
type Interface interface {
	ListZones(ctx context.Context) ([]Zone, error)
	ListRecords(ctx context.Context, zoneID string) ([]Record, error)
	CreateRecord(ctx context.Context, zoneID string, r Record) error
	UpdateRecord(ctx context.Context, zoneID, recordID, value string) error
}

var Providers = map[string]func(ctx context.Context, c config.Provider) (Interface, error){
	"cloudflare": newCloudflare,
}
