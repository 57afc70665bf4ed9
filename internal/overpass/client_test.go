package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
)

const stubResponse = `{"elements": [
	{"type": "node", "id": 1, "lat": 36.0, "lon": -81.2},
	{"type": "way", "id": 10, "nodes": [1], "tags": {"highway": "residential"}}
]}`

func testBox() aoi.LatLonBox {
	return aoi.LatLonBox{South: 35.99, West: -81.21, North: 36.01, East: -81.19}
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(testBox())
	for _, want := range []string{
		"[out:json]",
		"way['highway']",
		"way['waterway']",
		"relation['natural'='water']",
		"relation['waterway'='riverbank']",
		"relation['building']",
		"way['landuse'='residential']",
		"(._;>;>;)out body qt;",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q", want)
		}
	}
}

func TestFetchDecodesResponse(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if !strings.Contains(r.PostForm.Get("data"), "way['highway']") {
			t.Error("request body missing query")
		}
		w.Write([]byte(stubResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	coll, err := c.Fetch(context.Background(), testBox())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(coll.Nodes) != 1 || len(coll.Ways) != 1 {
		t.Errorf("decoded %d nodes, %d ways; want 1, 1", len(coll.Nodes), len(coll.Ways))
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(stubResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, t.TempDir())
	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background(), testBox()); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (cache should serve repeats)", hits)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.Fetch(context.Background(), testBox()); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestCachePathStable(t *testing.T) {
	c := New("http://example.invalid", t.TempDir())
	q := BuildQuery(testBox())
	p1 := c.cachePath(testBox(), q)
	p2 := c.cachePath(testBox(), q)
	if p1 == "" || p1 != p2 {
		t.Errorf("cache path not stable: %q vs %q", p1, p2)
	}
	other := testBox()
	other.North += 0.01
	if p3 := c.cachePath(other, BuildQuery(other)); p3 == p1 {
		t.Error("different bbox should produce a different cache key")
	}
}
