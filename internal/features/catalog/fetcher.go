package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Aym0707/aymstore/internal/servererrors"
)

// Alias priority per logical attribute: localized term first, then the
// English term, then the secondary localized term. First non-empty wins.
var (
	nameAliases     = []string{"نام", "Name", "Product Name"}
	codeAliases     = []string{"کود", "Code", "Product Code"}
	descAliases     = []string{"توضیح", "Description", "توضیحات"}
	fullDescAliases = []string{"توضیح کامل", "Full Description", "توضیحات کامل", "توضیح", "Description", "توضیحات"}
	priceAliases    = []string{"قیمت", "Price", "قیمت (افغانی)"}
	stockAliases    = []string{"موجودی", "Stock", "تعداد"}
	categoryAliases = []string{"دسته‌بندی", "Category", "دسته"}

	// imageKeywords match against lowercased field names; a field whose
	// name contains any of them and holds an attachment array contributes
	// its urls.
	imageKeywords = []string{"image", "photo", "pic", "تصویر", "عکس"}
)

const (
	defaultName        = "محصول بدون نام"
	defaultDescription = "بدون توضیح"
	defaultPrice       = "0 افغانی"
	defaultCategory    = "عمومی"
)

type FetcherConfig struct {
	BaseURL   string
	APIKey    string
	BaseID    string
	TableName string
	Timeout   time.Duration
}

// Fetcher pulls the raw tabular catalog from the upstream Airtable-style
// API and normalizes it into canonical products. The transform is pure and
// idempotent; the fetcher holds no state beyond its configuration.
type Fetcher struct {
	cfg    *FetcherConfig
	client *http.Client
}

func NewFetcher(cfg *FetcherConfig) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type rawRecord struct {
	ID     string          `json:"id"`
	Fields json.RawMessage `json:"fields"`
}

type rawPayload struct {
	Records []rawRecord `json:"records"`
}

// FetchProducts retrieves and normalizes the full catalog snapshot. A
// context deadline bounds the whole round trip; when it fires the in-flight
// request is simply abandoned.
func (f *Fetcher) FetchProducts(ctx context.Context) ([]Product, error) {
	if strings.TrimSpace(f.cfg.APIKey) == "" {
		return nil, servererrors.ErrUpstreamNotConfigured
	}

	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	url := fmt.Sprintf(
		"%s/%s/%s",
		strings.TrimRight(f.cfg.BaseURL, "/"),
		f.cfg.BaseID,
		f.cfg.TableName,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf(
				"%w after %s",
				servererrors.ErrUpstreamTimeout,
				f.cfg.Timeout,
			)
		}

		return nil, fmt.Errorf(
			"%w: %v",
			servererrors.ErrUpstreamFetchFailed,
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf(
			"%w: upstream API error: %d - %s",
			servererrors.ErrUpstreamFetchFailed,
			resp.StatusCode,
			http.StatusText(resp.StatusCode),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to read upstream response: %v",
			servererrors.ErrUpstreamFetchFailed,
			err,
		)
	}

	var payload rawPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf(
			"%w: malformed upstream payload: %v",
			servererrors.ErrUpstreamFetchFailed,
			err,
		)
	}

	return Normalize(payload.Records), nil
}

// Normalize turns raw upstream records into canonical products. Records
// lacking every recognized name field are skipped. Zero usable records is a
// valid empty catalog, not an error.
func Normalize(records []rawRecord) []Product {
	products := make([]Product, 0, len(records))

	for _, record := range records {
		fields := parseFields(record.Fields)
		if fields == nil {
			continue
		}

		if fields.resolve(nameAliases) == "" {
			continue
		}

		category := fields.resolveOr(categoryAliases, defaultCategory)
		name := fields.resolveOr(nameAliases, defaultName)

		images := fields.imageURLs()
		if len(images) == 0 {
			images = []string{placeholderImageURL(category, name)}
		}

		code := fields.resolve(codeAliases)
		if code == "" {
			code = "CODE-" + truncate(record.ID, 4)
		}

		products = append(products, Product{
			ID:              record.ID,
			Name:            name,
			Code:            code,
			Description:     fields.resolveOr(descAliases, defaultDescription),
			FullDescription: fields.resolveOr(fullDescAliases, defaultDescription),
			Price:           fields.resolveOr(priceAliases, defaultPrice),
			Stock:           parseStock(fields.resolve(stockAliases)),
			Category:        category,
			Images:          images,
		})
	}

	return products
}

// orderedField keeps the upstream document order, which the image scan
// depends on; a plain map would randomize it.
type orderedField struct {
	name  string
	value any
}

type recordFields []orderedField

// parseFields decodes a raw fields object preserving key order. Returns nil
// for absent or malformed fields.
func parseFields(raw json.RawMessage) recordFields {
	if len(raw) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var fields recordFields
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil
		}

		fields = append(fields, orderedField{name: key, value: value})
	}

	return fields
}

// resolve walks the alias list and returns the first non-empty value,
// stringified. Numeric cell values become their decimal rendering.
func (f recordFields) resolve(aliases []string) string {
	for _, alias := range aliases {
		for _, field := range f {
			if field.name != alias {
				continue
			}

			if s := stringify(field.value); s != "" {
				return s
			}
		}
	}

	return ""
}

func (f recordFields) resolveOr(aliases []string, fallback string) string {
	if s := f.resolve(aliases); s != "" {
		return s
	}

	return fallback
}

// imageURLs scans every field whose name matches an image keyword and
// collects each attachment url, preserving field then array order.
func (f recordFields) imageURLs() []string {
	var urls []string

	for _, field := range f {
		lowered := strings.ToLower(field.name)

		matched := false
		for _, keyword := range imageKeywords {
			if strings.Contains(lowered, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		attachments, ok := field.value.([]any)
		if !ok {
			continue
		}

		for _, attachment := range attachments {
			obj, ok := attachment.(map[string]any)
			if !ok {
				continue
			}

			if url, ok := obj["url"].(string); ok && url != "" {
				urls = append(urls, url)
			}
		}
	}

	return urls
}

// stringify renders a cell value for alias resolution. Zero and false cells
// count as absent so resolution moves on to the next alias or the default,
// matching how the upstream's falsy fields behaved.
func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == 0 {
			return ""
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		if value {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

// parseStock reads the leading integer of a stock cell; anything
// non-numeric or missing counts as out of stock.
func parseStock(s string) int {
	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}

	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
