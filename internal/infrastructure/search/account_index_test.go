package search

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

func TestAccountIndex_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	x := NewAccountIndex(nil, "accounts")

	assert.NoError(t, x.Index(ctx, entity.PublicAccount{ID: "a1"}))

	hits, err := x.Search(ctx, "ann", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchQuery_ClampsSize(t *testing.T) {
	assert.Equal(t, 10, searchQuery("x", 0)["size"])
	assert.Equal(t, 10, searchQuery("x", 500)["size"])
	assert.Equal(t, 25, searchQuery("x", 25)["size"])
}

func TestEnsureIndex_Disabled(t *testing.T) {
	assert.NoError(t, NewAccountIndex(nil, "accounts").EnsureIndex(context.Background()))
}

func TestIndexMappingIsJSON(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(indexMapping), &m))
	assert.Contains(t, m, "mappings")
}
