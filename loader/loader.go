// Package loader fetches the source web pages and reduces them to plain text.
package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchTimeout = 30 * time.Second

// Document is a fetched page: its address plus the visible text, one line per
// block of content. Documents are not persisted; they only live long enough
// to be chunked and embedded.
type Document struct {
	URL     string
	Content string
}

// Result reports the outcome of loading one URL. A failed fetch carries its
// error here instead of aborting the whole batch.
type Result struct {
	URL      string
	Document Document
	Err      error
}

type Loader struct {
	client *http.Client
}

func New() *Loader {
	return &Loader{client: &http.Client{Timeout: fetchTimeout}}
}

// Load fetches every URL in order and returns one Result per URL.
func (l *Loader) Load(ctx context.Context, urls []string) []Result {
	results := make([]Result, 0, len(urls))
	for _, url := range urls {
		doc, err := l.fetch(ctx, url)
		if err != nil {
			results = append(results, Result{URL: url, Err: err})
			continue
		}
		results = append(results, Result{URL: url, Document: doc})
	}
	return results
}

func (l *Loader) fetch(ctx context.Context, url string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("create request for %s: %w", url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Document{}, fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}

	parsed, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", url, err)
	}

	text := ExtractText(parsed)
	if text == "" {
		return Document{}, fmt.Errorf("no text content at %s", url)
	}

	return Document{URL: url, Content: text}, nil
}

// ExtractText strips non-content elements from the page and collapses the
// remaining visible text into newline-separated lines.
func ExtractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, footer, aside").Remove()

	raw := doc.Find("body").Text()
	if strings.TrimSpace(raw) == "" {
		raw = doc.Text()
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}
