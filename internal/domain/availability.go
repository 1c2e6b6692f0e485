package domain

// Status is the reduced form of whatever raw availability signal a vendor
// source returns (numeric code, scraped stock quantity, text keyword).
type Status string

func (s Status) String() string {
	return string(s)
}

const (
	StatusInStock    Status = "in_stock"
	StatusLow        Status = "low"
	StatusOutOfStock Status = "out_of_stock"
	StatusUnknown    Status = "unknown"
)

// MatchTier tags how a catalog selection was reconciled with external data.
type MatchTier string

const (
	MatchExact   MatchTier = "exact"
	MatchPartial MatchTier = "partial"
	MatchNone    MatchTier = "not_found"
)

// AvailabilityRecord is the outcome of resolving a finished selection against
// a vendor's live source. Reason is only set alongside StatusUnknown and
// explains why no definite answer was produced (e.g. "auth_expired").
type AvailabilityRecord struct {
	Status      Status    `json:"status"`
	DisplayName string    `json:"display_name"`
	ImageURL    string    `json:"image_url,omitempty"`
	Quantity    string    `json:"quantity,omitempty"`
	Tier        MatchTier `json:"tier"`
	Reason      string    `json:"reason,omitempty"`
}
