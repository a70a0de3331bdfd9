package memory

import (
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"wikiracer/titleindex/index"
)

// The size of each result batch fetched by the iterator.
const batchSize = 10

// Compile-time check for ensuring InMemoryBleveIndexer implements Indexer.
var _ index.Indexer = (*InMemoryBleveIndexer)(nil)

type bleveDoc struct {
	Title string
}

// InMemoryBleveIndexer is an Indexer implementation that uses an in-memory
// bleve instance to catalogue and search titles.
type InMemoryBleveIndexer struct {
	mu      sync.RWMutex
	docs    map[string]*index.Document
	byTitle map[string]string

	idx bleve.Index
}

// NewInMemoryBleveIndexer creates a title indexer that uses an in-memory
// bleve instance for indexing documents.
func NewInMemoryBleveIndexer() (*InMemoryBleveIndexer, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}

	return &InMemoryBleveIndexer{
		docs:    make(map[string]*index.Document),
		byTitle: make(map[string]string),
		idx:     idx,
	}, nil
}

// Close the indexer and release any allocated resources.
func (i *InMemoryBleveIndexer) Close() error {
	return i.idx.Close()
}

// Index inserts a new document to the index or updates the index entry for
// an existing document.
func (i *InMemoryBleveIndexer) Index(doc *index.Document) error {
	if doc.ID == uuid.Nil {
		return xerrors.Errorf("index: %w", index.ErrMissingID)
	}

	doc.IndexedAt = time.Now()
	dcopy := copyDoc(doc)
	key := dcopy.ID.String()

	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.idx.Index(key, bleveDoc{Title: dcopy.Title}); err != nil {
		return xerrors.Errorf("index: %w", err)
	}
	if prev, exists := i.docs[key]; exists && prev.Title != dcopy.Title {
		delete(i.byTitle, prev.Title)
	}
	i.docs[key] = dcopy
	i.byTitle[dcopy.Title] = key
	return nil
}

// FindByTitle looks up a document by its exact title.
func (i *InMemoryBleveIndexer) FindByTitle(title string) (*index.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	key, exists := i.byTitle[title]
	if !exists {
		return nil, xerrors.Errorf("find by title: %w", index.ErrNotFound)
	}

	return copyDoc(i.docs[key]), nil
}

// Search the index for a particular query and return back a result iterator.
func (i *InMemoryBleveIndexer) Search(q index.Query) (index.Iterator, error) {
	mq := bleve.NewMatchQuery(q.Expression)
	mq.SetField("Title")
	if q.Type == index.QueryTypeFuzzy {
		mq.SetFuzziness(2)
	}

	searchReq := bleve.NewSearchRequest(mq)
	searchReq.SortBy([]string{"-_score"})
	searchReq.Size = batchSize
	searchReq.From = int(q.Offset)
	rs, err := i.idx.Search(searchReq)
	if err != nil {
		return nil, xerrors.Errorf("search: %w", err)
	}

	return &bleveIterator{idx: i, searchReq: searchReq, rs: rs, cumIdx: q.Offset}, nil
}

// findByKey looks up a document by its bleve document key while holding a
// read lock; used by the iterator to materialize hits.
func (i *InMemoryBleveIndexer) findByKey(key string) (*index.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	doc, exists := i.docs[key]
	if !exists {
		return nil, xerrors.Errorf("find by key: %w", index.ErrNotFound)
	}

	return copyDoc(doc), nil
}

func copyDoc(d *index.Document) *index.Document {
	dcopy := new(index.Document)
	*dcopy = *d
	return dcopy
}
