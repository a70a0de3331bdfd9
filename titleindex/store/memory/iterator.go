package memory

import (
	"github.com/blevesearch/bleve/v2"

	"wikiracer/titleindex/index"
)

// bleveIterator paginates the results of a bleve search query.
type bleveIterator struct {
	idx       *InMemoryBleveIndexer
	searchReq *bleve.SearchRequest

	cumIdx uint64
	rsIdx  int
	rs     *bleve.SearchResult

	latchedDoc *index.Document
	lastErr    error
}

// Close releases any resources associated with an iterator.
func (it *bleveIterator) Close() error {
	it.idx = nil
	it.searchReq = nil
	if it.rs != nil {
		it.cumIdx = it.rs.Total
	}
	return nil
}

// Next loads the next document matching the search query. It returns false
// if no more documents are available.
func (it *bleveIterator) Next() bool {
	if it.lastErr != nil || it.rs == nil || it.cumIdx >= it.rs.Total {
		return false
	}

	// Exhausted the current batch; fetch the next one.
	if it.rsIdx >= it.rs.Hits.Len() {
		it.searchReq.From = int(it.cumIdx)
		if it.rs, it.lastErr = it.idx.idx.Search(it.searchReq); it.lastErr != nil {
			return false
		}
		it.rsIdx = 0
	}

	nextID := it.rs.Hits[it.rsIdx].ID
	if it.latchedDoc, it.lastErr = it.idx.findByKey(nextID); it.lastErr != nil {
		return false
	}

	it.cumIdx++
	it.rsIdx++
	return true
}

// Error returns the last error encountered by the iterator.
func (it *bleveIterator) Error() error {
	return it.lastErr
}

// Document returns the current document from the result set.
func (it *bleveIterator) Document() *index.Document {
	return it.latchedDoc
}
