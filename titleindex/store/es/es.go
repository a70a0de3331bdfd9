package es

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch"
	"github.com/elastic/go-elasticsearch/esapi"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"wikiracer/titleindex/index"
)

// Compile-time check for ensuring ElasticSearchIndexer implements Indexer.
var _ index.Indexer = (*ElasticSearchIndexer)(nil)

// ElasticSearchIndexer is an Indexer implementation that catalogues and
// searches titles in an elasticsearch cluster.
type ElasticSearchIndexer struct {
	es         *elasticsearch.Client
	refreshOpt func(*esapi.UpdateRequest)
}

// NewElasticSearchIndexer creates a title indexer that uses the specified
// elasticsearch nodes. If syncUpdates is true, every update is immediately
// visible to subsequent searches.
func NewElasticSearchIndexer(esNodes []string, syncUpdates bool) (*ElasticSearchIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: esNodes,
	}
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if err = ensureIndex(es); err != nil {
		return nil, err
	}

	refreshOpt := es.Update.WithRefresh("false")
	if syncUpdates {
		refreshOpt = es.Update.WithRefresh("true")
	}

	return &ElasticSearchIndexer{
		es:         es,
		refreshOpt: refreshOpt,
	}, nil
}

// Index inserts a new document to the index or updates the index entry
// for an existing document.
func (i *ElasticSearchIndexer) Index(doc *index.Document) error {
	if doc.ID == uuid.Nil {
		return xerrors.Errorf("index: %w", index.ErrMissingID)
	}

	doc.IndexedAt = time.Now()
	var (
		buf   bytes.Buffer
		esDoc = makeEsDoc(doc)
	)
	update := map[string]interface{}{
		"doc":           esDoc,
		"doc_as_upsert": true,
	}
	if err := json.NewEncoder(&buf).Encode(update); err != nil {
		return xerrors.Errorf("index: %w", err)
	}

	res, err := i.es.Update(indexName, esDoc.ID, &buf, i.refreshOpt)
	if err != nil {
		return xerrors.Errorf("index: %w", err)
	}

	var updateRes esUpdateRes
	if err = unmarshalResponse(res, &updateRes); err != nil {
		return xerrors.Errorf("index: %w", err)
	}

	return nil
}

// FindByTitle looks up a document by its exact title.
func (i *ElasticSearchIndexer) FindByTitle(title string) (*index.Document, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"Title.keyword": title,
			},
		},
		"from": 0,
		"size": 1,
	}

	searchRes, err := runSearch(i.es, query)
	if err != nil {
		return nil, xerrors.Errorf("find by title: %w", err)
	}

	if len(searchRes.Hits.HitList) != 1 {
		return nil, xerrors.Errorf("find by title: %w", index.ErrNotFound)
	}

	return mapEsDoc(&searchRes.Hits.HitList[0].DocSource), nil
}

// Search the index for a particular query and return back a result
// iterator.
func (i *ElasticSearchIndexer) Search(q index.Query) (index.Iterator, error) {
	match := map[string]interface{}{
		"query": q.Expression,
	}
	if q.Type == index.QueryTypeFuzzy {
		match["fuzziness"] = "AUTO"
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"Title": match,
			},
		},
		"from": q.Offset,
		"size": batchSize,
	}

	searchRes, err := runSearch(i.es, query)
	if err != nil {
		return nil, xerrors.Errorf("search: %w", err)
	}

	return &esIterator{es: i.es, searchReq: query, rs: searchRes, cumIdx: q.Offset}, nil
}

func ensureIndex(es *elasticsearch.Client) error {
	mappingsReader := strings.NewReader(esMappings)
	res, err := es.Indices.Create(indexName, es.Indices.Create.WithBody(mappingsReader))
	if err != nil {
		return xerrors.Errorf("cannot create ES index: %w", err)
	} else if res.IsError() {
		err := unmarshalError(res)
		if esErr, valid := err.(esError); valid && esErr.Type == "resource_already_exists_exception" {
			return nil
		}
		return xerrors.Errorf("cannot create ES index: %w", err)
	}

	return nil
}

func runSearch(es *elasticsearch.Client, searchQuery map[string]interface{}) (*esSearchRes, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		return nil, xerrors.Errorf("run search: %w", err)
	}

	// Perform the search request.
	res, err := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(indexName),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}

	var esRes esSearchRes
	if err = unmarshalResponse(res, &esRes); err != nil {
		return nil, err
	}

	return &esRes, nil
}

func unmarshalError(res *esapi.Response) error {
	return unmarshalResponse(res, nil)
}

func unmarshalResponse(res *esapi.Response, to interface{}) error {
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errRes esErrorRes
		if err := json.NewDecoder(res.Body).Decode(&errRes); err != nil {
			return err
		}

		return errRes.Error
	}

	return json.NewDecoder(res.Body).Decode(to)
}

func mapEsDoc(d *esDoc) *index.Document {
	return &index.Document{
		ID:        uuid.MustParse(d.ID),
		Title:     d.Title,
		IndexedAt: d.IndexedAt.UTC(),
	}
}

func makeEsDoc(d *index.Document) esDoc {
	return esDoc{
		ID:        d.ID.String(),
		Title:     d.Title,
		IndexedAt: d.IndexedAt.UTC(),
	}
}
