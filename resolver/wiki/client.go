package wiki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/xerrors"

	"wikiracer/resolver"
)

// DefaultAPIEndpoint is the action API endpoint of the English Wikipedia.
const DefaultAPIEndpoint = "https://en.wikipedia.org/w/api.php"

// Compile-time check for ensuring APIResolver implements Resolver.
var _ resolver.Resolver = (*APIResolver)(nil)

// APIResolver resolves page links through the MediaWiki action API. Redirects
// are followed server-side and continuation is handled transparently, so a
// single ResolveLinks call returns the complete outbound link set of a page.
type APIResolver struct {
	endpoint string
	client   *http.Client
}

// NewAPIResolver returns an APIResolver that queries the specified action API
// endpoint. If endpoint is empty, DefaultAPIEndpoint is used.
func NewAPIResolver(endpoint string) *APIResolver {
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	return &APIResolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ResolveLinks implements resolver.Resolver.
func (r *APIResolver) ResolveLinks(ctx context.Context, title string) ([]string, error) {
	var (
		links []string
		cont  string
	)
	for {
		page, next, err := r.queryLinks(ctx, title, cont)
		if err != nil {
			return nil, xerrors.Errorf("resolve links for %q: %w", title, err)
		}
		if page.Missing {
			return nil, xerrors.Errorf("resolve links for %q: %w", title, resolver.ErrPageNotFound)
		}

		for _, link := range page.Links {
			links = append(links, link.Title)
		}

		if next == "" {
			return links, nil
		}
		cont = next
	}
}

// queryLinks issues a single prop=links query, returning the matched page and
// the continuation token for the next batch (empty when exhausted).
func (r *APIResolver) queryLinks(ctx context.Context, title, cont string) (*apiPage, string, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"prop":          {"links"},
		"plnamespace":   {"0"},
		"pllimit":       {"max"},
		"titles":        {title},
	}
	if cont != "" {
		params.Set("plcontinue", cont)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", err
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, "", xerrors.Errorf("unexpected API status: %s", res.Status)
	}

	var apiRes apiQueryRes
	if err = json.NewDecoder(res.Body).Decode(&apiRes); err != nil {
		return nil, "", err
	}
	if apiRes.Error != nil {
		return nil, "", apiRes.Error
	}
	if len(apiRes.Query.Pages) != 1 {
		return nil, "", xerrors.Errorf("expected exactly one page in API response, got %d", len(apiRes.Query.Pages))
	}

	return &apiRes.Query.Pages[0], apiRes.Continue.PlContinue, nil
}

type apiQueryRes struct {
	Error    *apiError `json:"error"`
	Continue struct {
		PlContinue string `json:"plcontinue"`
	} `json:"continue"`
	Query struct {
		Pages []apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	Title   string `json:"title"`
	Missing bool   `json:"missing"`
	Links   []struct {
		Title string `json:"title"`
	} `json:"links"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return e.Code + ": " + e.Info
}
