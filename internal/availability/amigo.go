package availability

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"sunray/navigator/internal/catalog"
	"sunray/navigator/internal/config"
	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/match"
)

// amigoMaterial mirrors one entry of the customizer materials response.
// Availability is a numeric code: 2 in stock, 1 running low, 0 out.
type amigoMaterial struct {
	Material struct {
		Name         string `json:"name"`
		Availability int    `json:"availability"`
		Image        string `json:"image"`
	} `json:"material"`
}

// AmigoResolver looks materials up on the Amigo customizer API. The model id
// for the request comes from the selection: plisse items carry a model tag,
// other categories map through a fixed table.
type AmigoResolver struct {
	http       *resty.Client
	rl         ratelimit.Limiter
	baseURL    string
	normalizer *match.Normalizer
}

func NewAmigoResolver(cfg config.AmigoConfig, httpCfg config.HTTPConfig, normalizer *match.Normalizer) *AmigoResolver {
	return &AmigoResolver{
		http:       newHTTPClient(httpCfg),
		rl:         newLimiter(httpCfg.MaxRequestsPerSecond),
		baseURL:    cfg.BaseURL,
		normalizer: normalizer,
	}
}

func (r *AmigoResolver) Vendor() domain.Vendor {
	return domain.VendorAmigo
}

func (r *AmigoResolver) Resolve(ctx context.Context, sel Selection) domain.AvailabilityRecord {
	r.rl.Take()

	url := fmt.Sprintf("%s/api/models/%d/materials", r.baseURL, r.modelID(sel))

	resp, err := r.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		log.Errorf("❌ Amigo materials request failed: %v", err)
		return unknown(sel, ReasonRequestFailed)
	}
	if resp.IsError() {
		log.Errorf("❌ Amigo materials request: HTTP %d", resp.StatusCode())
		return unknown(sel, ReasonRequestFailed)
	}

	var materials []amigoMaterial
	if err := json.Unmarshal(resp.Bytes(), &materials); err != nil {
		log.Errorf("❌ Amigo materials response unparseable: %v", err)
		return unknown(sel, ReasonBadResponse)
	}
	if len(materials) == 0 {
		log.Warnf("Amigo returned no materials for %s", url)
		return unknown(sel, ReasonBadResponse)
	}

	names := make([]string, len(materials))
	for i := range materials {
		names[i] = materials[i].Material.Name
	}

	res := r.normalizer.Match(names, sel.Group, sel.Variant)
	if res.Tier == domain.MatchNone {
		log.Warnf("Amigo material not found: %s %s", sel.Group, sel.Variant)
		return unknown(sel, ReasonNotFound)
	}

	matched := materials[res.Index].Material
	log.Debugf("Amigo matched %q (%s)", matched.Name, res.Tier)

	return domain.AvailabilityRecord{
		Status:      amigoStatus(matched.Availability),
		DisplayName: matched.Name,
		ImageURL:    catalog.AbsoluteURL(r.baseURL, matched.Image),
		Tier:        res.Tier,
	}
}

func (r *AmigoResolver) modelID(sel Selection) int {
	if id, ok := catalog.AmigoPlisseModelIDs[sel.Item.ModelTag]; ok {
		return id
	}
	if id, ok := catalog.AmigoGofreModelIDs[sel.Item.ModelTag]; ok {
		return id
	}
	if id, ok := catalog.AmigoCategoryIDs[sel.Category]; ok {
		return id
	}
	return catalog.AmigoDefaultModelID
}

func amigoStatus(code int) domain.Status {
	switch code {
	case 2:
		return domain.StatusInStock
	case 1:
		return domain.StatusLow
	case 0:
		return domain.StatusOutOfStock
	default:
		return domain.StatusUnknown
	}
}
