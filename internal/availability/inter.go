package availability

import (
	"context"

	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/domain"
)

// interStatusTexts maps the literal availability phrases of the Inter feed.
var interStatusTexts = map[string]domain.Status{
	"Отсутствует":             domain.StatusOutOfStock,
	"Ограниченное количество": domain.StatusLow,
	"Есть в наличии":          domain.StatusInStock,
	"В наличии":               domain.StatusInStock,
}

// InterResolver answers from the catalog feed itself: the Inter export
// embeds an availability phrase per item, there is no live endpoint to ask.
type InterResolver struct{}

func NewInterResolver() *InterResolver {
	return &InterResolver{}
}

func (r *InterResolver) Vendor() domain.Vendor {
	return domain.VendorInter
}

func (r *InterResolver) Resolve(_ context.Context, sel Selection) domain.AvailabilityRecord {
	status, ok := interStatusTexts[sel.Item.RawStatus]
	if !ok {
		log.Warnf("Inter item %q carries unrecognized availability text %q", sel.Item.Name, sel.Item.RawStatus)
		return unknown(sel, ReasonBadResponse)
	}

	return domain.AvailabilityRecord{
		Status:      status,
		DisplayName: sel.Item.Name,
		ImageURL:    sel.Item.ImageURL,
		Tier:        domain.MatchExact,
	}
}
