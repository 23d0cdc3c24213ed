// Package sena scrapes the public SENA course catalogue (paginated HTML) and
// merges it into the universities dataset as one synthetic institution.
package sena

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Program is one scraped catalogue entry, identified by its programId query
// parameter.
type Program struct {
	ProgramID string `json:"programId"`
	Modality  string `json:"modality"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

var (
	offerLinkRe  = regexp.MustCompile(`href="(/oferta/[^"]+\?[^"]*programId=\d+)"`)
	totalPagesRe = regexp.MustCompile(`(?i)página\s+\d+\s+de\s+(\d+)`)
)

// fallbackTotalPages is used when the page counter cannot be parsed from the
// first page.
const fallbackTotalPages = 63

// Scraper walks the catalogue pages sequentially with a polite delay.
type Scraper struct {
	http  *resty.Client
	base  string
	delay time.Duration
	log   zerolog.Logger
}

// NewScraper creates a Scraper for the catalogue base URL
// (e.g. https://betowa.sena.edu.co/oferta).
func NewScraper(baseURL string, delay time.Duration, log zerolog.Logger) *Scraper {
	return &Scraper{
		http:  resty.New().SetHeader("Accept", "text/html"),
		base:  strings.TrimRight(baseURL, "/"),
		delay: delay,
		log:   log.With().Str("component", "sena").Logger(),
	}
}

// FetchAll scrapes every catalogue page and returns the deduplicated program
// list sorted by title (Spanish collation). Any HTTP failure aborts the run.
func (s *Scraper) FetchAll(ctx context.Context) ([]Program, error) {
	first, err := s.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	totalPages := fallbackTotalPages
	if m := totalPagesRe.FindStringSubmatch(first); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			totalPages = n
		}
	}
	s.log.Info().Int("pages", totalPages).Msg("catalogue size detected")

	byID := make(map[string]Program)
	var order []string

	for p := 1; p <= totalPages; p++ {
		html := first
		if p > 1 {
			html, err = s.fetchPage(ctx, p)
			if err != nil {
				return nil, err
			}
		}

		for _, link := range extractOfferLinks(s.base, html) {
			prog, ok := parseOfferLink(link)
			if !ok {
				continue
			}
			if _, seen := byID[prog.ProgramID]; !seen {
				order = append(order, prog.ProgramID)
			}
			byID[prog.ProgramID] = prog
		}

		if s.delay > 0 && p < totalPages {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	out := make([]Program, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}

	coll := collate.New(language.Spanish)
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(out[i].Title, out[j].Title) < 0
	})

	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, page int) (string, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(s.base)
	if err != nil {
		return "", fmt.Errorf("fetch catalogue page %d: %w", page, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch catalogue page %d: status %s", page, resp.Status())
	}
	return string(resp.Body()), nil
}

// extractOfferLinks pulls the absolute offer URLs out of one page of markup.
// The catalogue is server-rendered, so a single href pattern is enough; no
// HTML parser needed.
func extractOfferLinks(base string, html string) []string {
	host := strings.TrimSuffix(base, "/oferta")

	seen := make(map[string]struct{})
	var links []string
	for _, m := range offerLinkRe.FindAllStringSubmatch(html, -1) {
		link := host + strings.ReplaceAll(m[1], "&amp;", "&")
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// parseOfferLink derives a Program from an offer URL: the id and modality come
// from query parameters, the title from the path slug.
func parseOfferLink(link string) (Program, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return Program{}, false
	}

	programID := u.Query().Get("programId")
	if programID == "" {
		return Program{}, false
	}

	slug := u.Path[strings.LastIndex(u.Path, "/")+1:]
	title := titleFromSlug(slug)

	return Program{
		ProgramID: programID,
		Modality:  u.Query().Get("modality"),
		Title:     title,
		URL:       link,
	}, true
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
