package wiki

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/xerrors"

	"wikiracer/resolver"
)

// DefaultArticleBaseURL is the article URL prefix of the English Wikipedia.
const DefaultArticleBaseURL = "https://en.wikipedia.org/wiki/"

var (
	// Compile-time check for ensuring ScrapeResolver implements Resolver.
	_ resolver.Resolver = (*ScrapeResolver)(nil)

	articleHrefRegex = regexp.MustCompile(`href="/wiki/([^"#?]+)"`)
)

// ScrapeResolver resolves page links by fetching the rendered article HTML
// and extracting internal article anchors. It serves as a fallback for
// deployments where the action API is unavailable.
type ScrapeResolver struct {
	baseURL  string
	client   *http.Client
	sanitize *bluemonday.Policy
}

// NewScrapeResolver returns a ScrapeResolver that fetches articles below the
// specified base URL. If baseURL is empty, DefaultArticleBaseURL is used.
func NewScrapeResolver(baseURL string) *ScrapeResolver {
	if baseURL == "" {
		baseURL = DefaultArticleBaseURL
	}

	// Reduce the document to its anchors before extracting hrefs so that
	// commented-out or scripted markup cannot contribute links.
	policy := bluemonday.NewPolicy()
	policy.AllowAttrs("href").OnElements("a")

	return &ScrapeResolver{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		sanitize: policy,
	}
}

// ResolveLinks implements resolver.Resolver.
func (r *ScrapeResolver) ResolveLinks(ctx context.Context, title string) ([]string, error) {
	pageURL := r.baseURL + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, xerrors.Errorf("resolve links for %q: %w", title, err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("resolve links for %q: %w", title, err)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, xerrors.Errorf("resolve links for %q: %w", title, resolver.ErrPageNotFound)
	case res.StatusCode != http.StatusOK:
		return nil, xerrors.Errorf("resolve links for %q: unexpected status: %s", title, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, xerrors.Errorf("resolve links for %q: %w", title, err)
	}

	return extractArticleLinks(r.sanitize.Sanitize(string(body))), nil
}

// extractArticleLinks returns the titles of the article-namespace pages
// referenced by anchors in the sanitized document, in order of first
// occurrence.
func extractArticleLinks(sanitizedHTML string) []string {
	var (
		links []string
		seen  = make(map[string]struct{})
	)
	for _, match := range articleHrefRegex.FindAllStringSubmatch(sanitizedHTML, -1) {
		target, err := url.PathUnescape(match[1])
		if err != nil || isNamespacePage(target) {
			continue
		}

		title := strings.ReplaceAll(target, "_", " ")
		if _, exists := seen[title]; exists {
			continue
		}
		seen[title] = struct{}{}
		links = append(links, title)
	}

	return links
}

// namespacePrefixes lists the MediaWiki namespaces whose pages never count
// as wikiracing moves. Article titles may legitimately contain colons, so
// only these known prefixes are filtered.
var namespacePrefixes = []string{
	"Category:", "Draft:", "File:", "Help:", "Media:", "Module:",
	"Portal:", "Special:", "Talk:", "Template:", "User:", "Wikipedia:",
}

func isNamespacePage(target string) bool {
	for _, prefix := range namespacePrefixes {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}
