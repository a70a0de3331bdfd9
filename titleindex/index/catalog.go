package index

import (
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// Catalog adapts an Indexer for the two consumers of the title catalogue: it
// registers every title the link cache encounters and serves "did you mean"
// suggestions to the path validator.
type Catalog struct {
	idx Indexer
}

// NewCatalog returns a Catalog backed by the specified Indexer.
func NewCatalog(idx Indexer) *Catalog {
	return &Catalog{idx: idx}
}

// IndexTitle registers a title with the catalogue, assigning a document ID on
// first sight. Re-registering a known title is a no-op.
func (c *Catalog) IndexTitle(title string) error {
	if _, err := c.idx.FindByTitle(title); err == nil {
		return nil
	} else if !xerrors.Is(err, ErrNotFound) {
		return xerrors.Errorf("index title %q: %w", title, err)
	}

	doc := &Document{ID: uuid.New(), Title: title}
	if err := c.idx.Index(doc); err != nil {
		return xerrors.Errorf("index title %q: %w", title, err)
	}
	return nil
}

// Suggest returns up to limit catalogued titles that approximately match the
// specified title, best matches first.
func (c *Catalog) Suggest(title string, limit int) ([]string, error) {
	it, err := c.idx.Search(Query{Type: QueryTypeFuzzy, Expression: title})
	if err != nil {
		return nil, xerrors.Errorf("suggest titles for %q: %w", title, err)
	}
	defer func() { _ = it.Close() }()

	var suggestions []string
	for len(suggestions) < limit && it.Next() {
		suggestions = append(suggestions, it.Document().Title)
	}
	if err = it.Error(); err != nil {
		return nil, xerrors.Errorf("suggest titles for %q: %w", title, err)
	}

	return suggestions, nil
}
