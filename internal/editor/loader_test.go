package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

func TestPartition(t *testing.T) {
	scope := domain.Scope{AreaID: "audience", TabID: "segments"}
	rules := []domain.Rule{
		{ID: "t1", Name: "Conservative Scoring", IsTemplate: true},
		{ID: "r1", AreaID: "audience", TabID: "segments", Body: "first"},
		{ID: "r2", AreaID: "audience", TabID: "segments", Body: "second"},
		{ID: "r3", AreaID: "other", TabID: "tab", Body: "foreign scope"},
	}

	cat := Partition(scope, rules)
	assert.Len(t, cat.Templates, 1)
	require.Len(t, cat.UserRules, 2, "foreign-scope rules are filtered out")
	require.NotNil(t, cat.Active)
	assert.Equal(t, "r1", cat.Active.ID, "first scope-matched user rule is activated")
}

func TestPartition_NoUserRules(t *testing.T) {
	cat := Partition(domain.Scope{AreaID: "a", TabID: "t"}, []domain.Rule{
		{ID: "t1", IsTemplate: true},
	})
	assert.Nil(t, cat.Active)
	assert.Empty(t, cat.UserRules)
}

func TestLoader_TicketsAgeOut(t *testing.T) {
	loader := NewCatalogLoader(newFakeStore())

	t1 := loader.Begin(domain.Scope{AreaID: "a", TabID: "1"})
	assert.False(t, loader.IsStale(t1))

	t2 := loader.Begin(domain.Scope{AreaID: "b", TabID: "2"})
	assert.True(t, loader.IsStale(t1), "an older ticket is stale once superseded")
	assert.False(t, loader.IsStale(t2))
}

func TestLoader_Fetch(t *testing.T) {
	store := newFakeStore()
	store.addTemplate("Recency Focus", "", "Weight recent interactions higher")
	rule := store.addUserRule(domain.Scope{AreaID: "a", TabID: "1"}, "Mine", "body")

	loader := NewCatalogLoader(store)
	ticket := loader.Begin(domain.Scope{AreaID: "a", TabID: "1"})

	cat, err := loader.Fetch(context.Background(), ticket)
	require.NoError(t, err)
	assert.Len(t, cat.Templates, 1)
	require.NotNil(t, cat.Active)
	assert.Equal(t, rule.ID, cat.Active.ID)
}
