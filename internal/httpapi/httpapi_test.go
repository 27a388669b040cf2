package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/store"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.App.Port = 38472
	cfg.App.Locales = []string{"en", "de"}
	cfg.App.DefaultLocale = "en"
	cfg.Storage.Driver = "sqlite"
	cfg.RateLimit.PerSecond = 100
	cfg.RateLimit.Burst = 100
	cfg.Pages = map[int64]string{12: "/jobs"}
	cfg.InsertTags = map[string]string{"company": "ACME"}
	cfg.Modules = []config.Module{{
		ID:                   7,
		ShowTypes:            true,
		ShowLocations:        true,
		ShowButton:           true,
		ShowQuantity:         true,
		ShowLocationQuantity: true,
		TypesHeadline:        "Jobs at {{company}}",
		LocationsHeadline:    "Locations",
		SubmitLabel:          "Filter",
		JumpTo:               12,
		Method:               "GET",
	}}
	return cfg
}

type app struct {
	handler http.Handler
	hub     *events.Hub
	cfgPath string
	cfgVal  *atomic.Value
}

func setupApp(t *testing.T, cfg config.Config) app {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "jobs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := store.SeedDemo(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfgPath := filepath.Join(dir, "config.yml")
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, b, 0o644); err != nil {
		t.Fatal(err)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)
	hub := events.NewHub()
	t.Cleanup(hub.Close)

	mux := NewMux(Deps{
		Repo:        db,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
	})
	return app{handler: NewHandler(mux), hub: hub, cfgPath: cfgPath, cfgVal: &cfgVal}
}

func do(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRenderModule(t *testing.T) {
	a := setupApp(t, testConfig())
	rr := do(a.handler, http.MethodGet, "/modules/7?types=FULL_TIME", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %q", ct)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := doc.Find("div.mod_job_filter").Attr("data-ajax-route"); v != "/api/offers/filter" {
		t.Errorf("ajax route = %q", v)
	}
	ft := doc.Find(`label[for="opt_types_0"]`).Text()
	if ft != "Full time[2]" {
		t.Errorf("full time label = %q", ft)
	}
	if _, ok := doc.Find(`input[value="FULL_TIME"]`).Attr("checked"); !ok {
		t.Error("FULL_TIME should be pre-checked")
	}
	berlin := doc.Find(`input[value="1|2"]`)
	if berlin.Length() != 1 {
		t.Fatal("expected Berlin option with joined ids")
	}
	id, _ := berlin.Attr("id")
	if got := doc.Find(`label[for="` + id + `"]`).Text(); got != "Berlin[2]" {
		t.Errorf("berlin label = %q", got)
	}
	if doc.Find(`input[name="types[]"]`).Length() != 3 {
		t.Errorf("expected 3 observed types")
	}
}

func TestRenderModuleErrors(t *testing.T) {
	a := setupApp(t, testConfig())

	rr := do(a.handler, http.MethodGet, "/modules/99", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown module: %d", rr.Code)
	}
	var nf APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &nf); err != nil || nf.Error.Code != CodeModuleNotFound {
		t.Errorf("unknown module envelope %s", rr.Body.String())
	}

	rr = do(a.handler, http.MethodGet, "/modules/abc", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: %d", rr.Code)
	}
	var e APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil || e.Error.Code != CodeInvalidID || e.Error.RequestID == "" {
		t.Errorf("unexpected error envelope %s", rr.Body.String())
	}
	if rr := do(a.handler, http.MethodPost, "/modules/7", nil); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("post module: %d", rr.Code)
	}
}

func TestOfferFilterRoute(t *testing.T) {
	a := setupApp(t, testConfig())

	cases := []struct {
		target string
		want   int
	}{
		{"/api/offers/filter", 3},
		{"/api/offers/filter?types[]=FULL_TIME", 2},
		{"/api/offers/filter?location=3", 1},
		{"/api/offers/filter?types=INTERN&location=1|2", 1},
	}
	for _, c := range cases {
		rr := do(a.handler, http.MethodGet, c.target, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", c.target, rr.Code)
		}
		var resp filterResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Count != c.want || len(resp.Offers) != c.want {
			t.Errorf("%s: count %d, want %d", c.target, resp.Count, c.want)
		}
	}
}

func TestOfferFilterIncludesLocations(t *testing.T) {
	a := setupApp(t, testConfig())
	rr := do(a.handler, http.MethodGet, "/api/offers/filter?location=3", nil)
	var body struct {
		Offers []struct {
			ID          int64   `json:"id"`
			JobLocation []int64 `json:"jobLocation"`
		} `json:"offers"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Offers) != 1 || len(body.Offers[0].JobLocation) != 1 || body.Offers[0].JobLocation[0] != 3 {
		t.Errorf("unexpected offers %+v", body.Offers)
	}
}

func TestOfferFilterRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.PerSecond = 0.001
	cfg.RateLimit.Burst = 1
	a := setupApp(t, cfg)

	if rr := do(a.handler, http.MethodGet, "/api/offers/filter", nil); rr.Code != http.StatusOK {
		t.Fatalf("first request: %d", rr.Code)
	}
	rr := do(a.handler, http.MethodGet, "/api/offers/filter", nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After")
	}
}

func TestSeedPublishesEvent(t *testing.T) {
	a := setupApp(t, testConfig())
	ch := a.hub.Subscribe()

	rr := do(a.handler, http.MethodPost, "/seed", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("seed: %d", rr.Code)
	}
	var e events.Event
	if err := json.Unmarshal([]byte(<-ch), &e); err != nil {
		t.Fatal(err)
	}
	if e.Type != events.OffersChanged {
		t.Errorf("event type = %q", e.Type)
	}

	rr = do(a.handler, http.MethodGet, "/api/offers/filter", nil)
	var resp filterResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Count != 6 {
		t.Errorf("count after reseed = %d", resp.Count)
	}
}

func TestHealthListsRoutes(t *testing.T) {
	a := setupApp(t, testConfig())
	rr := do(a.handler, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("health: %d", rr.Code)
	}
	var body struct {
		OK     bool     `json:"ok"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.OK || !strings.Contains(strings.Join(body.Routes, ","), "job_filter.offer_filter") {
		t.Errorf("unexpected health %+v", body)
	}
}

func TestConfigPut(t *testing.T) {
	a := setupApp(t, testConfig())

	bad := testConfig()
	bad.Modules[0].Method = "PATCH"
	b, _ := json.Marshal(bad)
	if rr := do(a.handler, http.MethodPut, "/config", b); rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid config: %d %s", rr.Code, rr.Body.String())
	}

	good := testConfig()
	good.Modules[0].SubmitLabel = "Search"
	b, _ = json.Marshal(good)
	rr := do(a.handler, http.MethodPut, "/config", b)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid config: %d %s", rr.Code, rr.Body.String())
	}
	cur := a.cfgVal.Load().(config.Config)
	if cur.Modules[0].SubmitLabel != "Search" {
		t.Errorf("config not swapped: %+v", cur.Modules[0])
	}

	doc, err := goquery.NewDocumentFromReader(do(a.handler, http.MethodGet, "/modules/7", nil).Body)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("button#ctrl_submit").Text() != "Search" {
		t.Error("module should render the updated label")
	}

	if rr := do(a.handler, http.MethodPut, "/config", []byte(`{"nope":1}`)); rr.Code != http.StatusBadRequest {
		t.Errorf("unknown field: %d", rr.Code)
	}
}

func TestCorsPreflight(t *testing.T) {
	a := setupApp(t, testConfig())
	req := httptest.NewRequest(http.MethodOptions, "/api/offers/filter", nil)
	req.Header.Set("Origin", "https://example.org")
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight: %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://example.org" {
		t.Error("origin not reflected")
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := do(h, http.MethodGet, "/", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
