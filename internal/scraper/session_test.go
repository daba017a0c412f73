package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const landingPage = `
<html><body><form>
<input type="hidden" name="__VIEWSTATE" id="__VIEWSTATE" value="dDwtMTA4NzI" />
<input type="hidden" name="__VIEWSTATEGENERATOR" value="C2EE9ABB" />
<input type="hidden" name="__EVENTVALIDATION" value="/wEWAgKw" />
<input type="text" name="sDate" value="" />
</form></body></html>`

// fakeCGA mimics the landing page and search endpoint of the events web app.
type fakeCGA struct {
	t            *testing.T
	landing      string
	searchStatus int
	landingHits  int32
	searchHits   int32
	lastForm     map[string]string
}

func (f *fakeCGA) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webapps/cgaevents.asp", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.landingHits, 1)
		if r.Method != http.MethodGet {
			f.t.Errorf("landing method = %s, want GET", r.Method)
		}
		http.SetCookie(w, &http.Cookie{Name: "ASPSESSIONID", Value: "abc123", Path: "/"})
		fmt.Fprint(w, f.landing)
	})
	mux.HandleFunc("/webapps/in-events1x.asp", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.searchHits, 1)
		if r.Method != http.MethodPost {
			f.t.Errorf("search method = %s, want POST", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla/5.0") {
			f.t.Errorf("User-Agent = %q, want browser identifier", ua)
		}
		if ref := r.Header.Get("Referer"); !strings.HasSuffix(ref, "/webapps/cgaevents.asp") {
			f.t.Errorf("Referer = %q, want landing page", ref)
		}
		if c, err := r.Cookie("ASPSESSIONID"); err != nil || c.Value != "abc123" {
			f.t.Errorf("session cookie not sent: %v", err)
		}
		if err := r.ParseForm(); err != nil {
			f.t.Errorf("ParseForm() error: %v", err)
			return
		}
		f.lastForm = make(map[string]string)
		for k := range r.PostForm {
			f.lastForm[k] = r.PostForm.Get(k)
		}
		if f.searchStatus != 0 {
			w.WriteHeader(f.searchStatus)
		}
		fmt.Fprintf(w, "<table><tr><td>%s</td><td>10:00 AM</td><td>1</td><td>Aging Committee</td></tr></table>", f.lastForm["sDate"])
	})
	return mux
}

func newTestSession(t *testing.T, server *httptest.Server) *Session {
	t.Helper()
	s, err := NewSession(Options{
		LandingURL: server.URL + "/webapps/cgaevents.asp",
		SearchURL:  server.URL + "/webapps/in-events1x.asp",
		Logger:     quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	return s
}

func TestSession_FetchDay(t *testing.T) {
	fake := &fakeCGA{t: t, landing: landingPage}
	server := httptest.NewTLSServer(fake.handler())
	defer server.Close()

	s := newTestSession(t, server)
	ctx := context.Background()

	day1 := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	body, err := s.FetchDay(ctx, day1)
	if err != nil {
		t.Fatalf("FetchDay() error: %v", err)
	}
	if !strings.Contains(body, "Aging Committee") {
		t.Errorf("FetchDay() body = %q, want search results", body)
	}

	if _, err := s.FetchDay(ctx, day2); err != nil {
		t.Fatalf("second FetchDay() error: %v", err)
	}

	if hits := atomic.LoadInt32(&fake.landingHits); hits != 1 {
		t.Errorf("landing page fetched %d times, want 1", hits)
	}
	if hits := atomic.LoadInt32(&fake.searchHits); hits != 2 {
		t.Errorf("search endpoint hit %d times, want 2", hits)
	}

	wantForm := map[string]string{
		"sDate":                "03/03/2026",
		"eDate":                "03/03/2026",
		"btnSubmit":            "Search",
		"List":                 "1",
		"__VIEWSTATE":          "dDwtMTA4NzI",
		"__VIEWSTATEGENERATOR": "C2EE9ABB",
		"__EVENTVALIDATION":    "/wEWAgKw",
	}
	for k, want := range wantForm {
		if got := fake.lastForm[k]; got != want {
			t.Errorf("form[%s] = %q, want %q", k, got, want)
		}
	}
	if len(fake.lastForm) != len(wantForm) {
		t.Errorf("form has %d fields, want %d: %v", len(fake.lastForm), len(wantForm), fake.lastForm)
	}
}

func TestSession_MissingTokensOmitted(t *testing.T) {
	fake := &fakeCGA{t: t, landing: `<html><body><input type="hidden" name="__VIEWSTATE" /></body></html>`}
	server := httptest.NewTLSServer(fake.handler())
	defer server.Close()

	s := newTestSession(t, server)

	if _, err := s.FetchDay(context.Background(), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("FetchDay() error: %v", err)
	}

	tokens := s.Tokens()
	if len(tokens) != 1 {
		t.Fatalf("captured %d tokens, want 1: %v", len(tokens), tokens)
	}
	if v, ok := tokens["__VIEWSTATE"]; !ok || v != "" {
		t.Errorf("__VIEWSTATE = %q (present %v), want empty value", v, ok)
	}
	if _, ok := fake.lastForm["__EVENTVALIDATION"]; ok {
		t.Error("missing token should not be posted")
	}
}

func TestSession_NonOKBodyReturned(t *testing.T) {
	fake := &fakeCGA{t: t, landing: landingPage, searchStatus: http.StatusInternalServerError}
	server := httptest.NewTLSServer(fake.handler())
	defer server.Close()

	s := newTestSession(t, server)

	body, err := s.FetchDay(context.Background(), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("FetchDay() error: %v", err)
	}
	if !strings.Contains(body, "<table>") {
		t.Errorf("FetchDay() should return body regardless of status, got %q", body)
	}
}

func TestSession_NetworkError(t *testing.T) {
	fake := &fakeCGA{t: t, landing: landingPage}
	server := httptest.NewTLSServer(fake.handler())
	s := newTestSession(t, server)
	server.Close()

	_, err := s.FetchDay(context.Background(), time.Now())
	if err == nil {
		t.Fatal("FetchDay() expected error, got nil")
	}
	if len(s.Tokens()) != 0 {
		t.Error("tokens should not be captured after a failed landing fetch")
	}
}

func TestNewSession_Defaults(t *testing.T) {
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	if s.client == nil {
		t.Fatal("session client is nil")
	}
	if s.client.Jar == nil {
		t.Error("session client should carry a cookie jar")
	}
	if s.opts.LandingURL != LandingURL {
		t.Errorf("LandingURL = %q, want %q", s.opts.LandingURL, LandingURL)
	}
	if s.opts.SearchURL != SearchURL {
		t.Errorf("SearchURL = %q, want %q", s.opts.SearchURL, SearchURL)
	}
	if s.opts.SearchTimeout != SearchTimeout {
		t.Errorf("SearchTimeout = %v, want %v", s.opts.SearchTimeout, SearchTimeout)
	}
}
