package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/cache"
	"github.com/Dan9191/rental-service/internal/config"
)

var (
	// ErrEmptyAddress is returned when the address is blank
	ErrEmptyAddress = errors.New("address is required")
	// ErrNotFound is returned when the provider has no match for the address
	ErrNotFound = errors.New("address not found")
)

// Coordinates is a geocoded address
type Coordinates struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// Client resolves addresses against a Nominatim search endpoint
type Client struct {
	url       string
	userAgent string
	client    *http.Client
	cache     cache.Cache
	log       *logrus.Logger
}

// NewClient initializes a new geocoding client
func NewClient(cfg *config.Config, c cache.Cache, log *logrus.Logger) *Client {
	return &Client{
		url:       cfg.GeocodeURL,
		userAgent: cfg.GeocodeUserAgent,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: c,
		log:   log,
	}
}

func cacheKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Lookup returns the coordinates of address, serving repeated queries from the cache
func (c *Client) Lookup(ctx context.Context, address string) (Coordinates, error) {
	key := cacheKey(address)
	if key == "" {
		return Coordinates{}, ErrEmptyAddress
	}

	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		c.log.WithError(err).Warn("Geocode cache read failed")
	} else if ok {
		var coords Coordinates
		if err := json.Unmarshal(raw, &coords); err == nil {
			return coords, nil
		}
	}

	body, err := c.sendRequest(ctx, strings.TrimSpace(address))
	if err != nil {
		return Coordinates{}, err
	}
	coords, err := parseXMLResponse(body)
	if err != nil {
		return Coordinates{}, err
	}

	if raw, err := json.Marshal(coords); err == nil {
		if err := c.cache.Set(ctx, key, raw); err != nil {
			c.log.WithError(err).Warn("Geocode cache write failed")
		}
	}
	c.log.Debugf("Geocoded %q to %.6f,%.6f", key, coords.Lat, coords.Lon)
	return coords, nil
}

// sendRequest queries the search endpoint for a single XML result
func (c *Client) sendRequest(ctx context.Context, address string) ([]byte, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "xml")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// parseXMLResponse reads the first place element of a searchresults document
func parseXMLResponse(raw []byte) (Coordinates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse XML: %w", err)
	}

	place := doc.FindElement("//searchresults/place")
	if place == nil {
		return Coordinates{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(place.SelectAttrValue("lat", ""), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(place.SelectAttrValue("lon", ""), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude: %w", err)
	}

	return Coordinates{
		Lat:         lat,
		Lon:         lon,
		DisplayName: place.SelectAttrValue("display_name", ""),
	}, nil
}
