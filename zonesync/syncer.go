package zonesync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"zonesync/config"
	"zonesync/log"
	"zonesync/provider"
	"zonesync/sources"
)

// Syncer drives one batch of hosts through the reconcile pipeline. Hosts are
// processed strictly in order and the first fatal error aborts the whole run,
// so partial state changes never accumulate unnoticed.
type Syncer struct {
	provider provider.Interface
	source   sources.Interface
	hosts    []config.Host

	// zone name -> zone ID, valid for a single run only. Provider state is
	// re-derived on every run, never persisted.
	zones map[string]string
}

func NewSyncer(p provider.Interface, s sources.Interface, hosts []config.Host) *Syncer {
	return &Syncer{provider: p, source: s, hosts: hosts}
}

// Run discovers the public address once and reconciles every host against
// it. The returned error is the first fatal one; the caller decides process
// exit behavior.
func (s *Syncer) Run(ctx context.Context) error {
	ctx = log.SWith(ctx, log.Stage("sync"))
	done := log.Elapsed("elapsed")

	address, err := s.source.Lookup(ctx)
	if err != nil {
		log.S(ctx).Errorw("address discovery failed, abort run", zap.Error(err))
		return err
	}

	log.S(ctx).Infow("resolved address", "address", address, "source_type", s.source.Typename())

	s.zones = map[string]string{}

	for _, host := range s.hosts {
		if err := s.reconcileHost(ctx, host, address); err != nil {
			log.S(ctx).Errorw("reconcile failed, abort run",
				"zone", host.Zone, "subdomain", host.Subdomain, zap.Error(err))
			return err
		}
	}

	log.S(ctx).Infow("run complete", "hosts", len(s.hosts), done)

	return nil
}

// zoneID resolves a zone name to the provider's identifier, exact and
// case-sensitive, caching the answer for the rest of the run.
func (s *Syncer) zoneID(ctx context.Context, name string) (string, error) {
	if id, ok := s.zones[name]; ok {
		return id, nil
	}

	zones, err := s.provider.ListZones(ctx)
	if err != nil {
		return "", &ProviderError{Op: "list zones", Zone: name, Err: err}
	}

	for _, zone := range zones {
		if zone.Name == name {
			s.zones[name] = zone.ID
			return zone.ID, nil
		}
	}

	return "", &ZoneNotFoundError{Zone: name}
}

func (s *Syncer) reconcileHost(ctx context.Context, host config.Host, address string) error {
	fqdn := HostFQDN(host.Subdomain, host.Zone)
	ctx = log.SWith(ctx, "zone", host.Zone, "domain", fqdn)

	zoneID, err := s.zoneID(ctx, host.Zone)
	if err != nil {
		return err
	}

	records, err := s.provider.ListRecords(ctx, zoneID)
	if err != nil {
		return &ProviderError{Op: "list records", Zone: host.Zone, FQDN: fqdn, Err: err}
	}

	matched := matchRecords(records, fqdn)
	desired := DesiredState{FQDN: fqdn, Address: address}

	decision, err := Decide(desired, matched)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			conflict.Zone = host.Zone
		}
		return err
	}

	switch decision.Op {
	case OpNone:
		log.S(ctx).Infow("address didn't change, skip update", "address", address)

	case OpCreate:
		if err := s.provider.CreateRecord(ctx, zoneID, provider.Record{
			Name:  fqdn,
			Type:  provider.TypeA,
			Value: address,
		}); err != nil {
			return &ProviderError{Op: "create record", Zone: host.Zone, FQDN: fqdn, Err: err}
		}
		log.S(ctx).Infow("record created", "address", address)

	case OpUpdate:
		if err := s.provider.UpdateRecord(ctx, zoneID, decision.RecordID, address); err != nil {
			return &ProviderError{Op: "update record", Zone: host.Zone, FQDN: fqdn, Err: err}
		}
		log.S(ctx).Infow("record updated", "address", address, "old_address", matched[0].Value, "record_id", decision.RecordID)

	default:
		log.S(ctx).Errorw("unexpected decision", "op", decision.Op, log.Internal)
		return fmt.Errorf("internal error: unexpected decision %v", decision.Op)
	}

	return nil
}
