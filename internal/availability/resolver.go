// Package availability resolves finished catalog selections against each
// vendor's live stock source.
package availability

import (
	"context"
	"crypto/tls"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"sunray/navigator/internal/config"
	"sunray/navigator/internal/domain"
)

// Reasons attached to StatusUnknown records.
const (
	ReasonRequestFailed = "request_failed"
	ReasonBadResponse   = "bad_response"
	ReasonAuthExpired   = "auth_expired"
	ReasonNotFound      = "material_not_found"
	ReasonNoSource      = "no_source"
	ReasonSuperseded    = "superseded"
)

// Selection is everything a vendor resolver needs to look a material up.
type Selection struct {
	Vendor   domain.Vendor
	Category string
	Group    string
	Variant  string
	Item     domain.Item
}

// Resolver answers availability for one vendor. A resolver never returns an
// error: every failure mode folds into a StatusUnknown record with a reason,
// so a dead stock source degrades the answer instead of the navigation.
type Resolver interface {
	Vendor() domain.Vendor
	Resolve(ctx context.Context, sel Selection) domain.AvailabilityRecord
}

// Registry dispatches selections to the vendor's resolver.
type Registry struct {
	resolvers map[domain.Vendor]Resolver
}

func NewRegistry(resolvers ...Resolver) *Registry {
	r := &Registry{resolvers: make(map[domain.Vendor]Resolver, len(resolvers))}
	for _, res := range resolvers {
		r.resolvers[res.Vendor()] = res
	}
	return r
}

func (r *Registry) Resolve(ctx context.Context, sel Selection) domain.AvailabilityRecord {
	resolver, ok := r.resolvers[sel.Vendor]
	if !ok {
		log.Warnf("❌ No availability source registered for vendor %s", sel.Vendor)
		return unknown(sel, ReasonNoSource)
	}
	return resolver.Resolve(ctx, sel)
}

// unknown builds the degraded record for a failed lookup. The display name
// falls back to the catalog item so the caller still has something to show.
func unknown(sel Selection, reason string) domain.AvailabilityRecord {
	return domain.AvailabilityRecord{
		Status:      domain.StatusUnknown,
		DisplayName: sel.Item.Name,
		ImageURL:    sel.Item.ImageURL,
		Tier:        domain.MatchNone,
		Reason:      reason,
	}
}

// newHTTPClient builds the shared outbound client. A single attempt per
// lookup: stock answers are interactive, a retry storm helps nobody.
func newHTTPClient(cfg config.HTTPConfig) *resty.Client {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetTLSClientConfig(&tls.Config{MinVersion: tls.VersionTLS12})

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using proxy for stock lookups: %s", cfg.Proxy)
	}
	return client
}

func newLimiter(rps int) ratelimit.Limiter {
	if rps <= 0 {
		return ratelimit.NewUnlimited()
	}
	return ratelimit.New(rps)
}
