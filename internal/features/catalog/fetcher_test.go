package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aym0707/aymstore/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecordFromJSON(t *testing.T, id, fields string) rawRecord {
	t.Helper()

	return rawRecord{
		ID:     id,
		Fields: json.RawMessage(fields),
	}
}

func TestNormalize_fieldAliases(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec0001abcd", `{
			"نام": "شامپو گیاهی",
			"کود": "SH-01",
			"توضیح": "شامپو با کیفیت",
			"توضیح کامل": "شامپو گیاهی برای موهای خشک",
			"قیمت": "1,500 افغانی",
			"موجودی": "12",
			"دسته‌بندی": "شامپو",
			"تصویر": [{"url": "https://cdn.example/sh1.jpg"}, {"url": "https://cdn.example/sh2.jpg"}]
		}`),
		rawRecordFromJSON(t, "rec0002efgh", `{
			"Name": "Hand Soap",
			"Price": 250,
			"Stock": 7,
			"Category": "صابون",
			"Photos": [{"url": "https://cdn.example/soap.jpg"}]
		}`),
	}

	products := Normalize(records)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "rec0001abcd", first.ID)
	assert.Equal(t, "شامپو گیاهی", first.Name)
	assert.Equal(t, "SH-01", first.Code)
	assert.Equal(t, "شامپو با کیفیت", first.Description)
	assert.Equal(t, "شامپو گیاهی برای موهای خشک", first.FullDescription)
	assert.Equal(t, "1,500 افغانی", first.Price)
	assert.Equal(t, 12, first.Stock)
	assert.Equal(t, "شامپو", first.Category)
	assert.Equal(
		t,
		[]string{"https://cdn.example/sh1.jpg", "https://cdn.example/sh2.jpg"},
		first.Images,
	)

	second := products[1]
	assert.Equal(t, "Hand Soap", second.Name)
	// numeric cells stringify; absent code derives from the record id
	assert.Equal(t, "250", second.Price)
	assert.Equal(t, 7, second.Stock)
	assert.Equal(t, "CODE-rec0", second.Code)
	assert.Equal(t, "بدون توضیح", second.Description)
	assert.Equal(t, []string{"https://cdn.example/soap.jpg"}, second.Images)
}

func TestNormalize_skipsNamelessRecords(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec1", `{"قیمت": "100"}`),
		rawRecordFromJSON(t, "rec2", `{"Name": ""}`),
		rawRecordFromJSON(t, "rec3", `{"Product Name": "Kept"}`),
	}

	products := Normalize(records)
	require.Len(t, products, 1)
	assert.Equal(t, "Kept", products[0].Name)
}

func TestNormalize_placeholderImage(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec1", `{"Name": "A very long product name indeed", "Category": "کتاب"}`),
	}

	products := Normalize(records)
	require.Len(t, products, 1)
	require.Len(t, products[0].Images, 1)

	img := products[0].Images[0]
	assert.Contains(t, img, "https://via.placeholder.com/400x300/3949ab/FFFFFF?text=")
	// name is truncated to 15 runes before escaping
	assert.NotContains(t, img, "indeed")
}

func TestNormalize_stockFallsBackToZero(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec1", `{"Name": "A", "Stock": "نامشخص"}`),
		rawRecordFromJSON(t, "rec2", `{"Name": "B"}`),
		rawRecordFromJSON(t, "rec3", `{"Name": "C", "Stock": "34 عدد"}`),
	}

	products := Normalize(records)
	require.Len(t, products, 3)
	assert.Equal(t, 0, products[0].Stock)
	assert.Equal(t, 0, products[1].Stock)
	assert.Equal(t, 34, products[2].Stock)
}

// A numeric zero cell counts as absent, so resolution falls through to the
// next alias or the default instead of rendering "0".
func TestNormalize_zeroCellFallsThrough(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec1", `{"Name": "A", "Price": 0, "Stock": 0}`),
		rawRecordFromJSON(t, "rec2", `{"Name": "B", "قیمت": 0, "Price": "500"}`),
	}

	products := Normalize(records)
	require.Len(t, products, 2)

	assert.Equal(t, "0 افغانی", products[0].Price)
	assert.Equal(t, 0, products[0].Stock)
	assert.Equal(t, "500", products[1].Price)
}

func TestNormalize_imageFieldOrderPreserved(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec1", `{
			"Name": "Ordered",
			"Main Image": [{"url": "https://cdn.example/1.jpg"}],
			"Extra Photos": [{"url": "https://cdn.example/2.jpg"}, {"url": "https://cdn.example/3.jpg"}],
			"عکس": [{"url": "https://cdn.example/4.jpg"}]
		}`),
	}

	products := Normalize(records)
	require.Len(t, products, 1)
	assert.Equal(
		t,
		[]string{
			"https://cdn.example/1.jpg",
			"https://cdn.example/2.jpg",
			"https://cdn.example/3.jpg",
			"https://cdn.example/4.jpg",
		},
		products[0].Images,
	)
}

// Feeding normalized output back through normalization yields the same set.
func TestNormalize_idempotent(t *testing.T) {
	records := []rawRecord{
		rawRecordFromJSON(t, "rec0001abcd", `{
			"نام": "کرم مرطوب کننده",
			"قیمت": "2,000 افغانی",
			"موجودی": 5,
			"دسته‌بندی": "کرم"
		}`),
		rawRecordFromJSON(t, "rec0002efgh", `{
			"Name": "Perfume",
			"Code": "PF-9",
			"Price": "900",
			"Stock": 2,
			"Category": "عطر",
			"Images": [{"url": "https://cdn.example/pf.jpg"}]
		}`),
	}

	first := Normalize(records)

	roundTripped := make([]rawRecord, 0, len(first))
	for _, p := range first {
		attachments := make([]map[string]string, 0, len(p.Images))
		for _, img := range p.Images {
			attachments = append(attachments, map[string]string{"url": img})
		}

		fields, err := json.Marshal(map[string]any{
			"Name":             p.Name,
			"Code":             p.Code,
			"Description":      p.Description,
			"Full Description": p.FullDescription,
			"Price":            p.Price,
			"Stock":            p.Stock,
			"Category":         p.Category,
			"Images":           attachments,
		})
		require.NoError(t, err)

		roundTripped = append(roundTripped, rawRecord{ID: p.ID, Fields: fields})
	}

	second := Normalize(roundTripped)
	assert.Equal(t, first, second)
}

func TestFetchProducts(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/base123/table7", r.URL.Path)

		fmt.Fprint(w, `{"records": [
			{"id": "rec1", "fields": {"Name": "A", "Price": "100", "Stock": 3}},
			{"id": "rec2", "fields": {"Price": "no name, skipped"}}
		]}`)
	}))
	defer upstream.Close()

	fetcher := NewFetcher(&FetcherConfig{
		BaseURL:   upstream.URL,
		APIKey:    "test-key",
		BaseID:    "base123",
		TableName: "table7",
	})

	products, err := fetcher.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A", products[0].Name)
	assert.Equal(t, 3, products[0].Stock)
}

func TestFetchProducts_missingAPIKey(t *testing.T) {
	fetcher := NewFetcher(&FetcherConfig{
		BaseURL:   "http://127.0.0.1:0",
		BaseID:    "base123",
		TableName: "table7",
	})

	_, err := fetcher.FetchProducts(context.Background())
	assert.True(t, errors.Is(err, servererrors.ErrUpstreamNotConfigured))
}

func TestFetchProducts_upstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	fetcher := NewFetcher(&FetcherConfig{
		BaseURL:   upstream.URL,
		APIKey:    "test-key",
		BaseID:    "base123",
		TableName: "table7",
	})

	_, err := fetcher.FetchProducts(context.Background())
	assert.True(t, errors.Is(err, servererrors.ErrUpstreamFetchFailed))
	assert.Contains(t, err.Error(), "403")
}

func TestFetchProducts_emptyCatalogIsValid(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"records": []}`)
	}))
	defer upstream.Close()

	fetcher := NewFetcher(&FetcherConfig{
		BaseURL:   upstream.URL,
		APIKey:    "test-key",
		BaseID:    "base123",
		TableName: "table7",
	})

	products, err := fetcher.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
