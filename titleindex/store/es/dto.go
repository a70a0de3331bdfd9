package es

import (
	"fmt"
	"time"
)

// The name of the elasticsearch index to use.
const indexName = "titles"

// The size of each result batch fetched by the iterator.
const batchSize = 10

var esMappings = `
{
  "mappings": {
    "properties": {
      "ID": {"type": "keyword"},
      "Title": {
        "type": "text",
        "fields": {
          "keyword": {"type": "keyword"}
        }
      },
      "IndexedAt": {"type": "date"}
    }
  }
}`

type esDoc struct {
	ID        string    `json:"ID"`
	Title     string    `json:"Title"`
	IndexedAt time.Time `json:"IndexedAt"`
}

type esUpdateRes struct {
	Result string `json:"result"`
}

type esSearchRes struct {
	Hits esSearchResHits `json:"hits"`
}

type esSearchResHits struct {
	Total   esTotal    `json:"total"`
	HitList []esHitRes `json:"hits"`
}

type esTotal struct {
	Count uint64 `json:"value"`
}

type esHitRes struct {
	DocSource esDoc `json:"_source"`
}

type esError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (e esError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Reason)
}

type esErrorRes struct {
	Error esError `json:"error"`
}
