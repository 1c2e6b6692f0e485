package availability

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"sunray/navigator/internal/config"
	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/match"
)

var quantityRe = regexp.MustCompile(`([\d.,]+)`)

// CortinResolver scrapes the authenticated Cortin stock page. The page is a
// table keyed by data-material attributes with the remaining meters in the
// last cell of each row.
type CortinResolver struct {
	http       *resty.Client
	rl         ratelimit.Limiter
	baseURL    string
	creds      Credentials
	category   string
	product    string
	minRows    int
	normalizer *match.Normalizer
}

func NewCortinResolver(cfg config.CortinConfig, httpCfg config.HTTPConfig, creds Credentials, normalizer *match.Normalizer) *CortinResolver {
	return &CortinResolver{
		http:       newHTTPClient(httpCfg),
		rl:         newLimiter(httpCfg.MaxRequestsPerSecond),
		baseURL:    cfg.BaseURL,
		creds:      creds,
		category:   cfg.Category,
		product:    cfg.ProductType,
		minRows:    cfg.MinStockRows,
		normalizer: normalizer,
	}
}

func (r *CortinResolver) Vendor() domain.Vendor {
	return domain.VendorCortin
}

func (r *CortinResolver) Resolve(ctx context.Context, sel Selection) domain.AvailabilityRecord {
	r.rl.Take()

	req := r.http.R().
		SetContext(ctx).
		SetHeader("Referer", r.baseURL+"/").
		SetQueryParams(map[string]string{
			"category": r.category,
			"type":     r.product,
			"material": sel.Item.Name,
		})
	for name, value := range r.creds {
		req.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := req.Get(r.baseURL + "/mfg/stocks/materials")
	if err != nil {
		log.Errorf("❌ Cortin stock request failed: %v", err)
		return unknown(sel, ReasonRequestFailed)
	}
	if resp.IsError() {
		log.Errorf("❌ Cortin stock request: HTTP %d", resp.StatusCode())
		return unknown(sel, ReasonRequestFailed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		log.Errorf("❌ Cortin stock page unparseable: %v", err)
		return unknown(sel, ReasonBadResponse)
	}

	if r.authExpired(doc) {
		log.Warnf("🔄 Cortin session cookies look expired")
		return unknown(sel, ReasonAuthExpired)
	}

	quantity, tier := r.findQuantity(doc, sel.Item.Name)
	if tier == domain.MatchNone {
		log.Warnf("Cortin material not found on stock page: %s", sel.Item.Name)
		return unknown(sel, ReasonNotFound)
	}

	record := domain.AvailabilityRecord{
		Status:      cortinStatus(quantity),
		DisplayName: sel.Item.Name,
		ImageURL:    sel.Item.ImageURL,
		Quantity:    quantity,
		Tier:        tier,
	}
	if record.Status == domain.StatusUnknown {
		record.Reason = ReasonBadResponse
	}
	return record
}

// authExpired detects the login page served in place of the stock table.
// Three markers from the real site: a password input, a form posting to
// /site/login, and an authorization page title. A suspiciously short table
// also counts, since an expired session sometimes renders a stub.
func (r *CortinResolver) authExpired(doc *goquery.Document) bool {
	if doc.Find(`input[type="password"]`).Length() > 0 {
		return true
	}

	expired := false
	doc.Find("form").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if action, ok := s.Attr("action"); ok && strings.Contains(action, "/site/login") {
			expired = true
			return false
		}
		return true
	})
	if expired {
		return true
	}

	title := strings.ToLower(doc.Find("title").First().Text())
	if strings.Contains(title, "авторизация") && !strings.Contains(title, "остатки") {
		return true
	}

	return doc.Find("tr[data-material]").Length() < r.minRows
}

// findQuantity locates the material row, exact data-material match first,
// then bidirectional substring fallback, and pulls the number out of the
// last cell.
func (r *CortinResolver) findQuantity(doc *goquery.Document, name string) (string, domain.MatchTier) {
	want := r.normalizer.Normalize(name)

	var quantity string
	found := false
	doc.Find("tr[data-material]").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		material, _ := row.Attr("data-material")
		if r.normalizer.Normalize(material) == want {
			quantity, found = rowQuantity(row)
			return false
		}
		return true
	})
	if found {
		return quantity, domain.MatchExact
	}

	doc.Find("tr[data-material]").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		material, _ := row.Attr("data-material")
		got := r.normalizer.Normalize(material)
		if got == "" {
			return true
		}
		if strings.Contains(got, want) || strings.Contains(want, got) {
			quantity, found = rowQuantity(row)
			return false
		}
		return true
	})
	if found {
		return quantity, domain.MatchPartial
	}
	return "", domain.MatchNone
}

func rowQuantity(row *goquery.Selection) (string, bool) {
	cell := strings.TrimSpace(row.Find("td").Last().Text())
	m := quantityRe.FindStringSubmatch(cell)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func cortinStatus(quantity string) domain.Status {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(quantity, ",", "."), 64)
	if err != nil {
		return domain.StatusUnknown
	}
	if amount > 0 {
		return domain.StatusInStock
	}
	return domain.StatusOutOfStock
}
