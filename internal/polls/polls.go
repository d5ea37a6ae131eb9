package polls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultURL is the RealClearPolling generic ballot page.
	DefaultURL = "https://www.realclearpolling.com/polls/state-of-the-union/generic-congressional-vote"

	// DefaultUserAgent mimics a desktop browser; the site rejects bare clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// FallbackDem and FallbackRep are the generic-ballot figures used when
	// the page cannot be fetched or parsed.
	FallbackDem = 47.0
	FallbackRep = 43.0
)

// ErrNoMatch is returned by Parse when no Dem/Rep pair is found.
var ErrNoMatch = errors.New("no generic ballot figures found")

var ballotPattern = regexp.MustCompile(`(?is)(?:Democrats?|Dem|D)\s*([\d.]+)\s*%.*?(?:Republicans?|Rep|R)\s*([\d.]+)\s*%`)

// Generic is a generic-ballot reading.
type Generic struct {
	Dem      float64 `json:"dem"`
	Rep      float64 `json:"rep"`
	Fallback bool    `json:"fallback"`
}

// Margin is Dem minus Rep in points.
func (g Generic) Margin() float64 {
	return g.Dem - g.Rep
}

// Fallback builds the reading used when scraping fails.
func Fallback(dem, rep float64) Generic {
	return Generic{Dem: dem, Rep: rep, Fallback: true}
}

// Scraper fetches and parses the poll page.
type Scraper struct {
	url        string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURL overrides the page URL.
func WithURL(u string) Option {
	return func(s *Scraper) { s.url = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Scraper) { s.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.httpClient.Timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScraper creates a Scraper for DefaultURL with a 15s timeout.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		url:        DefaultURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and parses the page. Any error means the caller should
// use a fallback reading.
func (s *Scraper) Fetch(ctx context.Context) (Generic, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Generic{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Generic{}, fmt.Errorf("fetch polls: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Generic{}, fmt.Errorf("fetch polls: status %d", resp.StatusCode)
	}

	g, err := Parse(resp.Body)
	if err != nil {
		return Generic{}, fmt.Errorf("parse polls: %w", err)
	}

	s.logger.Debug("generic ballot scraped", "dem", g.Dem, "rep", g.Rep)
	return g, nil
}

// Parse extracts the first Dem/Rep percentage pair from an HTML page.
func Parse(r io.Reader) (Generic, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Generic{}, err
	}

	var (
		candidates []string
		body       *html.Node
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Body:
				if body == nil {
					body = n
				}
			case atom.Td, atom.Div, atom.Span, atom.P:
				if t := text(n, ""); isCandidate(t) {
					candidates = append(candidates, t)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if body != nil {
		candidates = append(candidates, text(body, " "))
	}

	for _, t := range candidates {
		if g, ok := match(t); ok {
			return g, nil
		}
	}
	return Generic{}, ErrNoMatch
}

func isCandidate(t string) bool {
	return strings.Contains(t, "%") &&
		(strings.Contains(t, "Dem") || strings.Contains(t, "Rep"))
}

func match(t string) (Generic, bool) {
	m := ballotPattern.FindStringSubmatch(t)
	if m == nil {
		return Generic{}, false
	}
	dem, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Generic{}, false
	}
	rep, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Generic{}, false
	}
	return Generic{Dem: dem, Rep: rep}, true
}

// text joins the trimmed, non-empty text nodes under n with sep.
// Script and style contents are skipped.
func text(n *html.Node, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}
