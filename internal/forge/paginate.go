package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// PerPage is the page size requested from the forge. A page of exactly
	// this length is taken to mean more pages may exist, so a result set
	// whose last page holds exactly PerPage items costs one extra request.
	PerPage = 100

	// MaxPages caps the number of requests per listing. Listings longer than
	// PerPage*MaxPages records are truncated without signal to the caller.
	MaxPages = 10
)

// Record is one loosely-structured API object. No schema is enforced; the
// forge's JSON is passed through as-is.
type Record = map[string]any

// FetchAll walks a page-numbered listing endpoint and concatenates every page
// into one ordered slice.
//
// Failure semantics are asymmetric: a connection-level failure on the first
// request returns (nil, error), while the same failure on any later page
// returns everything accumulated so far with a nil error. A body that does
// not decode as a JSON array is an error on any page; the HTTP status code is
// never consulted.
func (c *Client) FetchAll(ctx context.Context, endpoint, extraParams string) ([]Record, error) {
	url := listingURL(c.baseURL, endpoint, extraParams)

	c.logger.Info("making first api call", "url", url)
	page, err := c.getPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	data, err := decodePage(page)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	pageNumber := 1
	last := data
	for len(last) == PerPage && pageNumber < MaxPages {
		pageNumber++
		pagedURL := fmt.Sprintf("%s&page=%d", url, pageNumber)
		c.logger.Info("making paginated api call", "url", pagedURL)

		body, err := c.getPage(ctx, pagedURL)
		if err != nil {
			// Partial success: keep what we have.
			return data, nil
		}
		next, err := decodePage(body)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", pagedURL, err)
		}
		data = append(data, next...)
		last = next
	}

	c.logger.Info("finished listing", "url", url, "count", len(data))
	return data, nil
}

// listingURL builds the first-page URL: endpoint, optional extra query
// params, then the page-size param. Later pages append &page=<n> to this.
func listingURL(baseURL, endpoint, extraParams string) string {
	url := baseURL + endpoint + "?"
	if extraParams != "" {
		url += extraParams + "&"
	}
	return url + fmt.Sprintf("per_page=%d", PerPage)
}

// getPage issues a single GET and returns the raw body. Errors from the
// transport or while draining the body are connection-level; the status code
// is deliberately not checked (error payloads surface as decode failures).
func (c *Client) getPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func decodePage(body []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode listing page: %w", err)
	}
	return records, nil
}
