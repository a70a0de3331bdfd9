package es

import (
	"github.com/elastic/go-elasticsearch"

	"wikiracer/titleindex/index"
)

// esIterator paginates the results of an elasticsearch query.
type esIterator struct {
	es        *elasticsearch.Client
	searchReq map[string]interface{}

	cumIdx uint64
	rsIdx  int
	rs     *esSearchRes

	latchedDoc *index.Document
	lastErr    error
}

// Close releases any resources associated with an iterator.
func (it *esIterator) Close() error {
	it.es = nil
	it.searchReq = nil
	it.cumIdx = it.rs.Hits.Total.Count
	return nil
}

// Next loads the next document matching the search query. It returns false
// if no more documents are available.
func (it *esIterator) Next() bool {
	if it.lastErr != nil || it.rs == nil || it.cumIdx >= it.rs.Hits.Total.Count {
		return false
	}

	// Exhausted the current batch; fetch the next one.
	if it.rsIdx >= len(it.rs.Hits.HitList) {
		it.searchReq["from"] = it.cumIdx
		if it.rs, it.lastErr = runSearch(it.es, it.searchReq); it.lastErr != nil {
			return false
		}
		it.rsIdx = 0
	}

	it.latchedDoc = mapEsDoc(&it.rs.Hits.HitList[it.rsIdx].DocSource)
	it.cumIdx++
	it.rsIdx++
	return true
}

// Error returns the last error encountered by the iterator.
func (it *esIterator) Error() error {
	return it.lastErr
}

// Document returns the current document from the result set.
func (it *esIterator) Document() *index.Document {
	return it.latchedDoc
}
