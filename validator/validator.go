// Package validator implements the wikiracing path verification kernel:
// deciding whether a candidate sequence of page titles forms a simple path
// through the directed graph induced by each page's outbound links.
package validator

//go:generate mockgen -package mocks -destination mocks/mocks.go wikiracer/validator LinkResolver,Suggester

import (
	"context"
	"fmt"
	"strings"

	"wikiracer/linkgraph/graph"
)

// DefaultSuggestionLimit is the number of near-miss titles included in a
// rejection reason when a candidate page cannot be resolved.
const DefaultSuggestionLimit = 5

// LinkResolver is implemented by objects that can look up the outbound links
// of a page; in practice this is the memoizing link cache.
type LinkResolver interface {
	ResolveLinks(ctx context.Context, title string) ([]string, error)
}

// Suggester is implemented by objects that can propose near-miss titles for
// one that failed to resolve.
type Suggester interface {
	Suggest(title string, limit int) ([]string, error)
}

// Result is the outcome of a path validation. Rejections are retryable
// signals meant to be fed back into an external corrective loop; they are
// never fatal.
type Result struct {
	// The candidate path, passed through unchanged on acceptance.
	Path []string

	// Whether the path was confirmed to be a valid simple path.
	Accepted bool

	// A human-readable rejection reason; empty on acceptance.
	Reason string
}

func accepted(path []string) Result {
	return Result{Path: path, Accepted: true}
}

func rejected(reason string) Result {
	return Result{Accepted: false, Reason: reason}
}

// Validator checks candidate paths against the link graph discovered through
// a LinkResolver. Validation is synchronous and performs no retries of its
// own.
type Validator struct {
	res       LinkResolver
	suggester Suggester
}

// New returns a Validator that discovers links through res. The suggester
// may be nil, in which case rejection reasons carry no title suggestions.
func New(res LinkResolver, suggester Suggester) *Validator {
	return &Validator{res: res, suggester: suggester}
}

// Validate reports whether the candidate path is a simple path in the graph
// induced by each candidate page's outbound links: every consecutive pair of
// titles must be connected by an outbound link and no title may repeat.
//
// Only the pages appearing in the candidate are expanded; pages encountered
// as link targets become graph vertices but their own links are never
// resolved, so resolver cost is proportional to path length rather than to
// encyclopedia size. A single-element path is trivially valid and requires
// no resolution at all.
func (v *Validator) Validate(ctx context.Context, path []string) Result {
	if len(path) == 0 {
		return rejected("path is not valid: the path is empty")
	}
	for _, title := range path {
		if title == "" {
			return rejected("path is not valid: the path contains an empty page title")
		}
	}
	if len(path) == 1 {
		return accepted(path)
	}

	g, res := v.buildGraph(ctx, path)
	if res != nil {
		return *res
	}

	seen := make(map[string]struct{}, len(path))
	for _, title := range path {
		if _, exists := seen[title]; exists {
			return rejected(fmt.Sprintf("path is not valid: page %q appears more than once", title))
		}
		seen[title] = struct{}{}
	}

	for i := 0; i < len(path)-1; i++ {
		if !g.HasEdge(path[i], path[i+1]) {
			return rejected(fmt.Sprintf("path is not valid: page %q does not link to %q", path[i], path[i+1]))
		}
	}

	return accepted(path)
}

// buildGraph resolves the outbound links of every distinct candidate page
// and assembles the induced graph. It returns a non-nil Result when a page
// fails to resolve; the resolver's message is included verbatim so a
// retry-capable caller has context.
func (v *Validator) buildGraph(ctx context.Context, path []string) (*graph.Graph, *Result) {
	g := graph.New()
	expanded := make(map[string]struct{}, len(path))
	for _, title := range path {
		// HasVertex cannot stand in for this check: a candidate page may
		// already be in the graph as a mere link target of an earlier page.
		if _, exists := expanded[title]; exists {
			continue
		}
		expanded[title] = struct{}{}

		links, err := v.res.ResolveLinks(ctx, title)
		if err != nil {
			res := rejected(fmt.Sprintf("path is not valid: %s%s", err, v.suggestions(title)))
			return nil, &res
		}

		g.UpsertVertex(title)
		for _, link := range links {
			_ = g.UpsertEdge(title, link)
		}
	}

	return g, nil
}

// suggestions renders a "did you mean" clause for a title that failed to
// resolve, or an empty string when no suggester is configured or nothing
// similar is known.
func (v *Validator) suggestions(title string) string {
	if v.suggester == nil {
		return ""
	}

	titles, err := v.suggester.Suggest(title, DefaultSuggestionLimit)
	if err != nil || len(titles) == 0 {
		return ""
	}

	return fmt.Sprintf(" (similar known titles: %s)", strings.Join(titles, ", "))
}
