// Package index defines the contract for cataloguing the page titles seen
// during a run so that near-miss titles can be suggested when a candidate
// path references a page that does not resolve.
package index

import (
	"time"

	"github.com/google/uuid"
)

// Document describes a page title added to the index.
type Document struct {
	// A unique identifier for the document.
	ID uuid.UUID

	// The page title.
	Title string

	// The timestamp when the document was indexed.
	IndexedAt time.Time
}

// QueryType describes the types of queries supported by the indexer
// implementations.
type QueryType uint8

const (
	// QueryTypeMatch requests the indexer to match each expression term.
	QueryTypeMatch QueryType = iota

	// QueryTypeFuzzy requests the indexer to match expression terms
	// allowing for small spelling differences.
	QueryTypeFuzzy
)

// Query encapsulates a set of parameters to use when searching the index.
type Query struct {
	// The way that the indexer should interpret the search expression.
	Type QueryType

	// The search expression.
	Expression string

	// The number of search results to skip.
	Offset uint64
}

// Iterator is implemented by objects that can paginate search results.
type Iterator interface {
	// Close releases any resources associated with an iterator.
	Close() error

	// Next loads the next document matching the search query. It returns
	// false if no more documents are available.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Document returns the current document from the result set.
	Document() *Document
}

// Indexer is implemented by objects that can index and search documents.
type Indexer interface {
	// Index inserts a new document to the index or updates the index entry
	// for an existing document.
	Index(doc *Document) error

	// FindByTitle looks up a document by its exact title.
	FindByTitle(title string) (*Document, error)

	// Search the index for a particular query and return back a result
	// iterator.
	Search(q Query) (Iterator, error)
}
