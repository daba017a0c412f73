package scraper

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"github.com/pfrederiksen/cga-events/internal/logger"
)

const (
	LandingURL = "https://www.cga.ct.gov/webapps/cgaevents.asp"
	SearchURL  = "https://www.cga.ct.gov/webapps/in-events1x.asp"
	UserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	LandingTimeout = 10 * time.Second
	SearchTimeout  = 20 * time.Second

	searchDateLayout = "01/02/2006"
)

// TokenFields are the hidden inputs the search endpoint requires.
var TokenFields = []string{"__VIEWSTATE", "__VIEWSTATEGENERATOR", "__EVENTVALIDATION"}

// Options configures a Session. Zero values fall back to the package defaults.
type Options struct {
	LandingURL     string
	SearchURL      string
	UserAgent      string
	LandingTimeout time.Duration
	SearchTimeout  time.Duration
	Logger         *logger.Logger
}

// Session fetches daily listings over a single cookie-carrying HTTP client.
// Tokens are captured from the landing page on the first successful fetch and
// reused unchanged for the rest of the run.
type Session struct {
	client *http.Client
	opts   Options
	log    *logger.Logger

	tokens   map[string]string
	captured bool
}

// NewSession creates a Session. TLS certificate verification is disabled
// because the CGA host serves a certificate chain Go does not accept.
func NewSession(opts Options) (*Session, error) {
	if opts.LandingURL == "" {
		opts.LandingURL = LandingURL
	}
	if opts.SearchURL == "" {
		opts.SearchURL = SearchURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.LandingTimeout <= 0 {
		opts.LandingTimeout = LandingTimeout
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = SearchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402

	return &Session{
		client: &http.Client{
			Jar:       jar,
			Transport: transport,
		},
		opts:   opts,
		log:    opts.Logger,
		tokens: make(map[string]string),
	}, nil
}

// Tokens returns a copy of the captured anti-forgery fields.
func (s *Session) Tokens() map[string]string {
	out := make(map[string]string, len(s.tokens))
	for k, v := range s.tokens {
		out[k] = v
	}
	return out
}

// FetchDay returns the raw search results HTML for a single calendar day.
// The body is returned whatever the status code; the endpoint reports
// errors as ordinary pages.
func (s *Session) FetchDay(ctx context.Context, day time.Time) (string, error) {
	if !s.captured {
		if err := s.captureTokens(ctx); err != nil {
			return "", err
		}
	}

	dateStr := day.Format(searchDateLayout)
	form := url.Values{}
	form.Set("sDate", dateStr)
	form.Set("eDate", dateStr)
	form.Set("btnSubmit", "Search")
	form.Set("List", "1")
	for name, value := range s.tokens {
		form.Set(name, value)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.SearchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.SearchURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Referer", s.opts.LandingURL)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting search for %s: %w", dateStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Debug("search returned non-2xx status", logger.Fields{
			"date":   dateStr,
			"status": resp.StatusCode,
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading search response: %w", err)
	}

	return string(body), nil
}

// captureTokens loads the landing page and records whichever token fields it carries
func (s *Session) captureTokens(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.LandingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.LandingURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching landing page: %w", err)
	}
	defer resp.Body.Close()

	tokens, err := parseTokens(resp.Body)
	if err != nil {
		return err
	}

	s.tokens = tokens
	s.captured = true

	s.log.Debug("captured session tokens", logger.Fields{
		"count": len(tokens),
	})

	return nil
}

// parseTokens extracts the value of the first input named after each token field.
// Missing fields are omitted.
func parseTokens(r io.Reader) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing landing page: %w", err)
	}

	tokens := make(map[string]string, len(TokenFields))
	for _, name := range TokenFields {
		input := doc.Find(fmt.Sprintf(`input[name=%q]`, name)).First()
		if input.Length() == 0 {
			continue
		}
		tokens[name] = input.AttrOr("value", "")
	}

	return tokens, nil
}
