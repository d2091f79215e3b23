package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

// Source scrapes reviews from an HTML listing page. The base URL must contain
// a %s placeholder for the hotel id, e.g. https://example.com/hotels/%s/reviews
type Source struct {
	client  *http.Client
	baseURL string
}

func New(client *http.Client, baseURL string) *Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Source{client: client, baseURL: baseURL}
}

// FetchRaw downloads the review page for the hotel and extracts up to limit
// entries. Any transport or parse failure propagates as an ingestion failure.
func (s *Source) FetchRaw(ctx context.Context, hotelID string, limit int) ([]domain.RawReview, error) {
	pageURL := fmt.Sprintf(s.baseURL, hotelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	out := make([]domain.RawReview, 0, limit)
	doc.Find(".review").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Find(".review-text").Text())
		if text == "" {
			return true
		}
		rr := domain.RawReview{
			Text:   text,
			Author: strings.TrimSpace(sel.Find(".review-author").Text()),
		}
		if v, ok := sel.Attr("data-rating"); ok {
			if rating, perr := strconv.ParseFloat(strings.TrimSpace(v), 64); perr == nil {
				rr.Rating = rating
			}
		}
		if v, ok := sel.Attr("data-date"); ok {
			if ts, perr := time.Parse("2006-01-02", strings.TrimSpace(v)); perr == nil {
				rr.Date = &ts
			}
		}
		out = append(out, rr)
		return len(out) < limit
	})

	return out, nil
}
