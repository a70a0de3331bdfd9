package resolver

import (
	"context"
	"errors"
)

var (
	// ErrPageNotFound is returned when a title does not correspond to any
	// resolvable article, including after following redirects.
	ErrPageNotFound = errors.New("page not found")
)

// Resolver is implemented by objects that can look up the outbound links of
// an encyclopedia page.
type Resolver interface {
	// ResolveLinks returns the titles of the pages that the page with the
	// specified title links to, after resolving redirects. The order of the
	// returned titles carries no meaning beyond "as provided by the source".
	//
	// Implementations must fail with an error wrapping ErrPageNotFound when
	// the title cannot be resolved to an article.
	ResolveLinks(ctx context.Context, title string) ([]string, error)
}
