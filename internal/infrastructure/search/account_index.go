// Package search indexes public account documents in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

// AccountIndex writes and queries account documents.
// A nil index or nil client is a no-op returning no hits.
type AccountIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewAccountIndex(es *elasticsearch.Client, index string) *AccountIndex {
	return &AccountIndex{es: es, index: index}
}

func (x *AccountIndex) enabled() bool {
	return x != nil && x.es != nil && x.index != ""
}

// indexMapping keeps email exact-matchable while name stays full-text.
const indexMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "name":       {"type": "text"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "avatar":     {"type": "keyword", "index": false},
      "created_at": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *AccountIndex) EnsureIndex(ctx context.Context) error {
	if !x.enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := x.es.Indices.Create(x.index,
		x.es.Indices.Create.WithContext(c),
		x.es.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index %s: %s", x.index, res.Status())
	}
	return nil
}

func (x *AccountIndex) Index(ctx context.Context, a entity.PublicAccount) error {
	if !x.enabled() {
		return nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over name and email.
func (x *AccountIndex) Search(ctx context.Context, q string, size int) ([]entity.PublicAccount, error) {
	if !x.enabled() {
		return []entity.PublicAccount{}, nil
	}
	b, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.PublicAccount `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.PublicAccount, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func searchQuery(q string, size int) map[string]any {
	if size <= 0 || size > 50 {
		size = 10
	}
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
}
