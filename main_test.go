package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hemantsolanki/portfolio/internal/config"
	"github.com/hemantsolanki/portfolio/internal/relay"
	"github.com/hemantsolanki/portfolio/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoGenerator struct{ reply string }

func (g echoGenerator) Generate(_ context.Context, text string) (string, error) {
	return g.reply, nil
}

func testSite(t *testing.T, gen relay.Generator) *site {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	cfg := config.Default()
	cfg.TemplatesGlob = "templates/*"
	cfg.StaticDir = "static"
	s, err := newSite(cfg, db, gen)
	if err != nil {
		t.Fatalf("newSite: %v", err)
	}
	return s
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s := testSite(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	rec := do(s.router(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`id="page-config"`,
		"Hemant Solanki",
		`"failsafeMs":3000`,
		`id="terminal-text"`,
		"<strong>analytics meets AI</strong>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	s := testSite(t, nil)
	rec := do(s.router(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeRecordsUsage(t *testing.T) {
	s := testSite(t, echoGenerator{reply: "Positive tone."})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":"great work"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(s.router(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp relay.AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Output != "Positive tone." {
		t.Errorf("output = %q", resp.Output)
	}

	analyses, err := s.db.RecentAnalyses(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(analyses) != 1 || analyses[0].Status != store.StatusOK || analyses[0].InputChars != 10 {
		t.Fatalf("analyses = %+v", analyses)
	}
}

func TestAnalyzeEmptyAnswerFallsBack(t *testing.T) {
	s := testSite(t, echoGenerator{})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(s.router(), req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), relay.FallbackOutput) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	s := testSite(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := do(s.router(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestVisitorTracking(t *testing.T) {
	s := testSite(t, nil)
	h := s.router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "test-agent")
	do(h, req)

	skipped := httptest.NewRequest(http.MethodGet, "/", nil)
	skipped.Header.Set("DNT", "1")
	do(h, skipped)
	do(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	do(h, httptest.NewRequest(http.MethodGet, "/privacy", nil))
	s.admin.wg.Wait()

	visitors, err := s.db.RecentVisitors(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visitors) != 1 {
		t.Fatalf("visitors = %+v", visitors)
	}
	v := visitors[0]
	if v.Path != "/" || v.UserAgent != "test-agent" || len(v.HashedIP) != 16 {
		t.Errorf("visitor = %+v", v)
	}
}

func TestAdminLogin(t *testing.T) {
	s := testSite(t, nil)
	h := s.router()

	rec := do(h, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("unauthenticated dashboard = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	login := func(user, pass string) *httptest.ResponseRecorder {
		form := url.Values{"username": {user}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return do(h, req)
	}

	if rec := login("admin", "wrong"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}

	rec = login("admin", "admin123")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/dashboard" {
		t.Fatalf("login = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	var token *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "admin_token" {
			token = c
		}
	}
	if token == nil || token.Value == "" {
		t.Fatal("no admin_token cookie")
	}

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/api/stats", "/admin/api/analyses"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(token)
		if rec := do(h, req); rec.Code != http.StatusOK {
			t.Errorf("%s = %d", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/privacy/delete-visitor-data?all=true", nil)
	req.AddCookie(token)
	rec = do(h, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"deleted":0`) {
		t.Errorf("delete = %d %s", rec.Code, rec.Body.String())
	}
}

func TestRenderedPageSimulation(t *testing.T) {
	s := testSite(t, nil)
	markup, err := pageMarkup(s, "")
	if err != nil {
		t.Fatal(err)
	}
	report, err := simulatePage(markup, s.page)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Unmatched) != 0 {
		t.Errorf("unmatched selectors: %v", report.Unmatched)
	}
	if report.FailsafeHiddenAt != 3600*time.Millisecond {
		t.Errorf("failsafe hidden at %v, want 3.6s", report.FailsafeHiddenAt)
	}
	if report.LoadedHiddenAt != 600*time.Millisecond {
		t.Errorf("loaded hidden at %v, want 600ms", report.LoadedHiddenAt)
	}
	if report.TypingDoneAt <= 0 {
		t.Errorf("typing never finished")
	}
	if report.Counters == 0 {
		t.Errorf("no counters found")
	}
}

func TestWritePageConfig(t *testing.T) {
	s := testSite(t, nil)
	var b strings.Builder
	if err := writePageConfig(&b, s.page, "json"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"overlayId": "page-loader"`) {
		t.Errorf("json output missing loader id:\n%s", b.String())
	}
	if err := writePageConfig(&b, s.page, "toml"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestServeUntilDoneDrainsRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusNoContent)
	})}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- serveUntilDone(ctx, srv, ln) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-started
	cancel()
	select {
	case err := <-served:
		t.Fatalf("returned with a request in flight: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	if err := <-served; err != nil {
		t.Fatalf("serveUntilDone: %v", err)
	}
	if got := <-status; got != http.StatusNoContent {
		t.Errorf("in-flight request status = %d", got)
	}
}

func TestPrivacyCleanupIsTracked(t *testing.T) {
	s := testSite(t, nil)
	h := s.router()
	ctx := context.Background()
	old := store.Visitor{HashedIP: "old", Path: "/", Timestamp: time.Now().AddDate(-2, 0, 0)}
	recent := store.Visitor{HashedIP: "recent", Path: "/", Timestamp: time.Now().Add(-time.Hour)}
	for _, v := range []store.Visitor{old, recent} {
		if err := s.db.RecordVisit(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	cookies := do(h, req).Result().Cookies()

	req = httptest.NewRequest(http.MethodPost, "/admin/privacy/delete-visitor-data", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if rec := do(h, req); rec.Code != http.StatusOK {
		t.Fatalf("cleanup status = %d", rec.Code)
	}
	s.admin.wg.Wait()

	visitors, err := s.db.RecentVisitors(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visitors) != 1 || visitors[0].HashedIP != "recent" {
		t.Errorf("visitors after cleanup = %+v", visitors)
	}
}
