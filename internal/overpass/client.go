// Package overpass fetches the upstream vector feature collection for an
// AOI, with an optional content-addressed read-through cache of the raw
// response.
package overpass

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
)

// DefaultURL is the public Overpass API endpoint.
const DefaultURL = "https://overpass-api.de/api/interpreter"

// cacheSchema invalidates cached responses whenever the query shape changes.
const cacheSchema = "v3"

// Client fetches and caches Overpass responses.
type Client struct {
	URL        string
	CacheDir   string // empty disables caching
	HTTPClient *http.Client
}

// New returns a client for the given endpoint and cache directory.
func New(endpoint, cacheDir string) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &Client{
		URL:        endpoint,
		CacheDir:   cacheDir,
		HTTPClient: &http.Client{Timeout: 45 * time.Second},
	}
}

// BuildQuery assembles the Overpass QL query for one AOI bounding box:
// roads, waterway centerlines, water areas from both ways and relations
// (including riverbank), buildings from ways and relations, and the
// forest/built-up land-use polygons.
func BuildQuery(box aoi.LatLonBox) string {
	bbox := fmt.Sprintf("(%f,%f,%f,%f)", box.South, box.West, box.North, box.East)
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, sel := range []string{
		"way['highway']",
		"way['waterway']",
		"way['natural'='water']",
		"way['landuse'='reservoir']",
		"way['waterway'='riverbank']",
		"relation['natural'='water']",
		"relation['landuse'='reservoir']",
		"relation['waterway'='riverbank']",
		"way['building']",
		"relation['building']",
		"way['natural'='wood']",
		"way['landuse'='forest']",
		"way['landcover'='trees']",
		"way['landuse'='residential']",
		"way['landuse'='industrial']",
		"way['landuse'='commercial']",
	} {
		b.WriteString(sel)
		b.WriteString(bbox)
		b.WriteString(";")
	}
	b.WriteString(");(._;>;>;)out body qt;")
	return b.String()
}

// Fetch returns the feature collection for the box, serving from the cache
// when a prior identical query is on disk. Cache read or write failures
// degrade silently to the network path.
func (c *Client) Fetch(ctx context.Context, box aoi.LatLonBox) (*feature.Collection, error) {
	query := BuildQuery(box)
	cachePath := c.cachePath(box, query)

	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			if coll, err := feature.Decode(bytes.NewReader(data)); err == nil {
				return coll, nil
			}
			// Corrupt cache entry: refetch.
		}
	}

	data, err := c.post(ctx, query)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		_ = os.WriteFile(cachePath, data, 0o644)
	}
	return feature.Decode(bytes.NewReader(data))
}

func (c *Client) cachePath(box aoi.LatLonBox, query string) string {
	if c.CacheDir == "" {
		return ""
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return ""
	}
	key := fmt.Sprintf("%s|%.6f,%.6f,%.6f,%.6f|%s",
		cacheSchema, box.South, box.West, box.North, box.East, query)
	sum := sha1.Sum([]byte(key))
	return filepath.Join(c.CacheDir, fmt.Sprintf("%x.json", sum))
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building feature store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching features: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feature store returned %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feature response: %w", err)
	}
	return data, nil
}
