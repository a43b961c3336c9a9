package tripadvisor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout      = 30 * time.Second
	photoFetchParallism = 4
)

// Client wraps the TripAdvisor content API: category-filtered location
// search, location details and photos. It normalizes the two benign
// failure modes — not-found and access-denied — into empty results so the
// enrichment feature can never break the journal itself.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client against the given API base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Address is the location's address as returned by the API.
type Address struct {
	Street1       string `json:"street1,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	AddressString string `json:"address_string,omitempty"`
}

// Image is a single rendition of a photo.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Photo holds the renditions of one location photo keyed by size name
// (thumbnail, small, medium, large, original).
type Photo struct {
	ID      int              `json:"id"`
	Caption string           `json:"caption,omitempty"`
	Images  map[string]Image `json:"images"`
}

// Location is one search result.
type Location struct {
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Rating     string  `json:"rating,omitempty"`
	Address    Address `json:"address_obj"`
	Photos     []Photo `json:"photos,omitempty"`
}

// LocationDetails is the detail view of a single location.
type LocationDetails struct {
	LocationID  string  `json:"location_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	WebURL      string  `json:"web_url,omitempty"`
	Rating      string  `json:"rating,omitempty"`
	NumReviews  string  `json:"num_reviews,omitempty"`
	Address     Address `json:"address_obj"`
}

// SearchResult is the normalized search response. Notice carries a
// diagnostic when the upstream refused the request but the search still
// degraded gracefully.
type SearchResult struct {
	Locations []Location `json:"data"`
	Notice    string     `json:"notice,omitempty"`
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Search runs a category-filtered location search. With withPhotos set,
// each result's photos are fetched concurrently; a failing photo fetch
// degrades that one result to an empty photo list.
func (c *Client) Search(ctx context.Context, query, category string, withPhotos bool) (*SearchResult, error) {
	params := url.Values{"searchQuery": {query}}
	if category != "" {
		params.Set("category", category)
	}

	status, body, err := c.get(ctx, "/location/search", params)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Locations: []Location{}}
	switch {
	case status == http.StatusNotFound:
		return result, nil
	case status == http.StatusForbidden:
		logger.Log.Warn("TripAdvisor rejected the request; returning empty results")
		result.Notice = "location lookup is unavailable: access denied (check the API key)"
		return result, nil
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("tripadvisor search returned status %d", status)
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode tripadvisor search response: %w", err)
	}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &result.Locations); err != nil {
			return nil, fmt.Errorf("failed to decode tripadvisor search response: %w", err)
		}
	}

	if withPhotos {
		c.attachPhotos(ctx, result.Locations)
	}
	return result, nil
}

// GetDetails fetches the detail view of one location. An unknown location
// comes back as nil, not an error.
func (c *Client) GetDetails(ctx context.Context, locationID string) (*LocationDetails, error) {
	status, body, err := c.get(ctx, "/location/"+url.PathEscape(locationID)+"/details", nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, nil
	case status == http.StatusForbidden:
		logger.Log.Warn("TripAdvisor rejected the details request")
		return nil, nil
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("tripadvisor details returned status %d", status)
	}

	var details LocationDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to decode tripadvisor details response: %w", err)
	}
	return &details, nil
}

// GetPhotos fetches the photos of one location. Unknown locations and
// denied requests yield an empty list.
func (c *Client) GetPhotos(ctx context.Context, locationID string) ([]Photo, error) {
	status, body, err := c.get(ctx, "/location/"+url.PathEscape(locationID)+"/photos", nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound, status == http.StatusForbidden:
		return []Photo{}, nil
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("tripadvisor photos returned status %d", status)
	}

	var envelope struct {
		Data []Photo `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode tripadvisor photos response: %w", err)
	}
	if envelope.Data == nil {
		envelope.Data = []Photo{}
	}
	return envelope.Data, nil
}

// attachPhotos enriches search results with photos in parallel. Photo
// failures are isolated per result and never fail the search.
func (c *Client) attachPhotos(ctx context.Context, locations []Location) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(photoFetchParallism)

	for i := range locations {
		i := i
		g.Go(func() error {
			photos, err := c.GetPhotos(gctx, locations[i].LocationID)
			if err != nil {
				logger.Log.WithError(err).WithField("location_id", locations[i].LocationID).
					Warn("Photo fetch failed, continuing without photos")
				locations[i].Photos = []Photo{}
				return nil
			}
			locations[i].Photos = photos
			return nil
		})
	}
	g.Wait()
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (int, []byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("tripadvisor request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read tripadvisor response: %w", err)
	}
	return resp.StatusCode, body, nil
}
