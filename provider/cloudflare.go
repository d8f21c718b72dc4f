package provider

import (
	"context"
	"fmt"

	cfapi "github.com/cloudflare/cloudflare-go"
	"go.uber.org/zap"

	"zonesync/common"
	"zonesync/config"
	"zonesync/log"
)

type cloudflare struct {
	token   string
	ttl     int
	proxied bool

	// baseURL overrides the API endpoint; set only in tests.
	baseURL string
}

type cfLogger struct {
	ctx context.Context
}

func (l *cfLogger) Printf(format string, v ...interface{}) {
	log.S(l.ctx).Debugf(format, v...)
}

func (d *cloudflare) getAPI(ctx context.Context) (*cfapi.API, error) {
	opts := []cfapi.Option{
		cfapi.HTTPClient(common.HTTPClient(ctx)),
		cfapi.UsingLogger(&cfLogger{ctx: ctx}),
	}

	if d.baseURL != "" {
		opts = append(opts, cfapi.BaseURL(d.baseURL))
	}

	api, err := cfapi.NewWithAPIToken(d.token, opts...)
	if err != nil {
		log.S(ctx).Errorw("failed create cloudflare API", zap.Error(err))
		return nil, fmt.Errorf("failed create cloudflare API: %w", err)
	}

	return api, nil
}

func (d *cloudflare) ListZones(ctx context.Context) (zones []Zone, err error) {
	ctx = log.SWith(ctx, "type", "cloudflare", "action", "list_zones")

	api, err := d.getAPI(ctx)
	if err != nil {
		return nil, err
	}

	cfZones, err := api.ListZones(ctx)
	if err != nil {
		log.S(ctx).Errorw("failed list zones", zap.Error(err))
		return nil, fmt.Errorf("failed list zones: %w", err)
	}

	for _, zone := range cfZones {
		zones = append(zones, Zone{ID: zone.ID, Name: zone.Name})
	}

	log.S(ctx).Debugw("listed zones", "count", len(zones))

	return zones, nil
}

func (d *cloudflare) ListRecords(ctx context.Context, zoneID string) (records []Record, err error) {
	ctx = log.SWith(ctx, "type", "cloudflare", "action", "list_records", "zone_id", zoneID)

	api, err := d.getAPI(ctx)
	if err != nil {
		return nil, err
	}

	// The matcher needs the full record set of the zone; follow pagination
	// to the end instead of settling for the first page.
	params := cfapi.ListDNSRecordsParams{}
	for {
		cfRecords, info, err := api.ListDNSRecords(ctx, cfapi.ZoneIdentifier(zoneID), params)
		if err != nil {
			log.S(ctx).Errorw("failed list records", zap.Error(err))
			return nil, fmt.Errorf("failed list records: %w", err)
		}

		for _, record := range cfRecords {
			records = append(records, Record{
				ID:    record.ID,
				Name:  record.Name,
				Type:  record.Type,
				Value: record.Content,
			})
		}

		if !info.HasMorePages() {
			break
		}

		params.ResultInfo = info.Next()
	}

	log.S(ctx).Debugw("listed records", "count", len(records))

	return records, nil
}

func (d *cloudflare) CreateRecord(ctx context.Context, zoneID string, r Record) error {
	ctx = log.SWith(ctx,
		"type", "cloudflare",
		"action", "create",
		"zone_id", zoneID,
		"ns_type", r.Type,
		"domain", r.Name,
		"address", r.Value)

	api, err := d.getAPI(ctx)
	if err != nil {
		return err
	}

	params := cfapi.CreateDNSRecordParams{
		Type:    r.Type,
		Name:    r.Name,
		Content: r.Value,
		TTL:     d.ttl,
		Proxied: cfapi.BoolPtr(d.proxied),
	}

	cfRecord, err := api.CreateDNSRecord(ctx, cfapi.ZoneIdentifier(zoneID), params)
	if err != nil {
		log.S(ctx).Warnw("failed create record", zap.Error(err))
		return fmt.Errorf("failed create record: %w", err)
	}

	log.S(ctx).Debugw("record created", "record_id", cfRecord.ID)

	return nil
}

func (d *cloudflare) UpdateRecord(ctx context.Context, zoneID, recordID, value string) error {
	ctx = log.SWith(ctx,
		"type", "cloudflare",
		"action", "update",
		"zone_id", zoneID,
		"record_id", recordID,
		"address", value)

	api, err := d.getAPI(ctx)
	if err != nil {
		return err
	}

	// PATCH semantics: only the content changes, name and type stay as-is.
	params := cfapi.UpdateDNSRecordParams{
		ID:      recordID,
		Content: value,
	}

	if _, err := api.UpdateDNSRecord(ctx, cfapi.ZoneIdentifier(zoneID), params); err != nil {
		log.S(ctx).Warnw("failed update record", zap.Error(err))
		return fmt.Errorf("failed update record: %w", err)
	}

	log.S(ctx).Debugw("record updated")

	return nil
}

func newCloudflare(ctx context.Context, c config.Provider) (Interface, error) {
	ctx = log.SWith(ctx, "type", "cloudflare")

	var pc config.ProviderCloudflareConfig
	if err := common.WeakDecodeMap(c.Config, &pc); err != nil {
		log.S(ctx).Errorw("bad config", zap.Error(err), "config", c.Config)
		return nil, fmt.Errorf(`bad config: %w`, err)
	}

	if pc.APIToken == "" {
		log.S(ctx).Errorw("missing api token")
		return nil, fmt.Errorf("missing api token")
	}

	d := &cloudflare{
		token:   pc.APIToken,
		ttl:     pc.TTL,
		proxied: pc.Proxied,
	}

	// Credentials are validated eagerly so a bad token fails at startup
	// instead of on the first sync run.
	if _, err := d.getAPI(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
