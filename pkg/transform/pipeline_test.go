package transform

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cperrors "github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/settings"
)

func mustParse(t *testing.T, doc string) *paste.Document {
	t.Helper()
	d, err := paste.Parse([]byte(doc))
	require.NoError(t, err)
	return d
}

func docWith(entities ...string) string {
	return fmt.Sprintf(`{"formatVersion": "4.0", "entities": [%s]}`, strings.Join(entities, ", "))
}

func typeIDs(doc *paste.Document) []string {
	ids := make([]string, 0, doc.Len())
	for _, e := range doc.Entities() {
		ids = append(ids, e.TypeID())
	}
	return ids
}

func TestRemovePreservesSurvivorOrder(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "keep/a.prefab", "ownerId": 1}`,
		`{"typeId": "drop/x.prefab"}`,
		`{"typeId": "keep/b.prefab"}`,
		`{"typeId": "drop/y.prefab"}`,
		`{"typeId": "keep/c.prefab"}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{
		Filter: &settings.Filter{ID: "t", RemovedPrefabs: []string{"drop/*"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EntitiesRemoved)
	assert.Equal(t, []string{"keep/a.prefab", "keep/b.prefab", "keep/c.prefab"}, typeIDs(doc))
}

func TestSwitchOffOnlyTouchesLitEntities(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "npc/turret.prefab", "ownerId": 1, "flags": {"on": true}}`,
		`{"typeId": "npc/turret.prefab", "flags": {"on": false}}`,
		`{"typeId": "npc/turret.prefab"}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{
		Filter: &settings.Filter{ID: "t", SwitchedOffPrefabs: []string{"npc/turret.prefab"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.EntitiesSwitched)
	for _, e := range doc.Entities() {
		assert.False(t, e.IsOn())
	}
}

func TestStripCountsItems(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "box/big.prefab", "ownerId": 1, "items": [{"itemId": "wood"}, {"itemId": "stone"}]}`,
		`{"typeId": "box/big.prefab", "items": []}`,
		`{"typeId": "box/other.prefab", "items": [{"itemId": "ore"}]}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{
		Filter: &settings.Filter{ID: "t", RemovedItemsFromPrefabs: []string{"box/big.prefab"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.EntitiesStripped)
	assert.Equal(t, 2, summary.ItemsRemoved)
	assert.Equal(t, 1, doc.Entities()[2].ItemCount(), "unmatched entity keeps its items")
}

func TestExtraStripPatternsAugmentTheFilter(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "box/a.prefab", "ownerId": 1, "items": [{"itemId": "wood"}]}`,
		`{"typeId": "box/b.prefab", "items": [{"itemId": "stone"}]}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{
		Filter:             &settings.Filter{ID: "t", RemovedItemsFromPrefabs: []string{"box/a.prefab"}},
		ExtraStripPatterns: []string{"box/b.prefab"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.EntitiesStripped)
}

func TestIdempotence(t *testing.T) {
	source := docWith(
		`{"typeId": "drop/x.prefab"}`,
		`{"typeId": "npc/turret.prefab", "ownerId": 5, "flags": {"on": true}}`,
		`{"typeId": "box/big.prefab", "ownerId": 0, "items": [{"itemId": "wood"}]}`,
		`{"typeId": "door/wood.prefab", "ownerId": 5, "lock": {"code": "9999"}}`,
	)
	req := &Request{
		Filter: &settings.Filter{
			ID:                      "t",
			RemovedPrefabs:          []string{"drop/*"},
			SwitchedOffPrefabs:      []string{"npc/*"},
			RemovedItemsFromPrefabs: []string{"box/*"},
		},
		LockCode: "1234",
	}

	doc := mustParse(t, source)
	first, err := NewPipeline().Apply(doc, req)
	require.NoError(t, err)
	assert.False(t, first.Empty())

	once, err := doc.Marshal()
	require.NoError(t, err)

	second, err := NewPipeline().Apply(doc, req)
	require.NoError(t, err)
	assert.True(t, second.Empty(), "second pass must be an empty diff, got %+v", second)

	twice, err := doc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestAutoAssignPicksMostFrequentOwner(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "w/1.prefab", "ownerId": 100}`,
		`{"typeId": "w/2.prefab", "ownerId": 200}`,
		`{"typeId": "w/3.prefab", "ownerId": 200}`,
		`{"typeId": "w/4.prefab", "ownerId": 100}`,
		`{"typeId": "w/5.prefab", "ownerId": 200}`,
		`{"typeId": "w/6.prefab", "ownerId": 0}`,
		`{"typeId": "w/7.prefab", "ownerId": 0}`,
		`{"typeId": "w/8.prefab"}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}})
	require.NoError(t, err)

	assert.Equal(t, int64(200), summary.AssignedOwnerID)
	assert.Equal(t, 2, summary.OwnersAssigned)
	assert.Equal(t, int64(100), doc.Entities()[0].OwnerID(), "non-zero owners untouched")
	assert.Equal(t, int64(200), doc.Entities()[5].OwnerID())
	assert.Equal(t, int64(200), doc.Entities()[6].OwnerID())
	assert.False(t, doc.Entities()[7].HasOwner(), "ownerless entities stay ownerless")
}

func TestAutoAssignTieBreakTakesLastMaximal(t *testing.T) {
	// 300 and 100 both own two entities; after the ascending-by-count
	// stable sort the pairs read (200:1, 300:2, 100:2) and the last
	// maximal element, 100, wins.
	doc := mustParse(t, docWith(
		`{"typeId": "w/1.prefab", "ownerId": 300}`,
		`{"typeId": "w/2.prefab", "ownerId": 100}`,
		`{"typeId": "w/3.prefab", "ownerId": 300}`,
		`{"typeId": "w/4.prefab", "ownerId": 200}`,
		`{"typeId": "w/5.prefab", "ownerId": 100}`,
		`{"typeId": "w/6.prefab", "ownerId": 0}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}})
	require.NoError(t, err)
	assert.Equal(t, int64(100), summary.AssignedOwnerID)
}

func TestExplicitAssignOverwritesEveryOwnedEntity(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "w/1.prefab", "ownerId": 100}`,
		`{"typeId": "w/2.prefab", "ownerId": 0}`,
		`{"typeId": "w/3.prefab"}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}, NewOwnerID: 777})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.OwnersAssigned)
	assert.Equal(t, int64(777), doc.Entities()[0].OwnerID())
	assert.Equal(t, int64(777), doc.Entities()[1].OwnerID())
	assert.False(t, doc.Entities()[2].HasOwner())
}

func TestAutoAssignFailsWithoutOwnerFields(t *testing.T) {
	doc := mustParse(t, docWith(`{"typeId": "w/1.prefab"}`))
	_, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}})
	assert.True(t, cperrors.IsCode(err, cperrors.ErrInputNoOwnedEntity))
}

func TestAutoAssignFailsWhenAllOwnersAreZero(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "w/1.prefab", "ownerId": 0}`,
		`{"typeId": "w/2.prefab", "ownerId": 0}`,
	))
	_, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}})
	assert.True(t, cperrors.IsCode(err, cperrors.ErrInputNoOwnedEntity))
}

func TestLockCodeRewriteOnlyTouchesCombinationLocks(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "door/a.prefab", "ownerId": 1, "lock": {}}`,
		`{"typeId": "door/b.prefab", "lock": {"code": "0000"}}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}, LockCode: "1234"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.LockCodesSet)
	assert.False(t, doc.Entities()[0].Lock().HasCode(), "key lock must not gain a code")
	assert.Equal(t, "1234", doc.Entities()[1].Lock().Code())
}

func TestRemoveAllLocks(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "door/a.prefab", "ownerId": 1, "lock": {}}`,
		`{"typeId": "door/b.prefab", "lock": {"code": "0000"}}`,
		`{"typeId": "wall/c.prefab"}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{Filter: &settings.Filter{ID: "t"}, RemoveAllLocks: true})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.LocksRemoved)
	for _, e := range doc.Entities() {
		assert.Nil(t, e.Lock())
	}
}

func TestLockCodeSkippedWhenRemovingAllLocks(t *testing.T) {
	doc := mustParse(t, docWith(
		`{"typeId": "door/b.prefab", "ownerId": 1, "lock": {"code": "0000"}}`,
	))

	summary, err := NewPipeline().Apply(doc, &Request{
		Filter:         &settings.Filter{ID: "t"},
		LockCode:       "1234",
		RemoveAllLocks: true,
	})
	require.NoError(t, err)

	assert.True(t, summary.LockCodeSkipped)
	assert.Equal(t, 0, summary.LockCodesSet)
	assert.Equal(t, 1, summary.LocksRemoved)
}

func TestRequestValidation(t *testing.T) {
	filter := &settings.Filter{ID: "t"}

	tests := []struct {
		name     string
		req      Request
		wantCode cperrors.ErrorCode
	}{
		{name: "ok default", req: Request{Filter: filter}},
		{name: "ok full", req: Request{Filter: filter, NewOwnerID: 1, LockCode: "0042"}},
		{name: "missing filter", req: Request{}, wantCode: cperrors.ErrInternal},
		{name: "negative owner", req: Request{Filter: filter, NewOwnerID: -1}, wantCode: cperrors.ErrUsageInvalidFlag},
		{name: "short code", req: Request{Filter: filter, LockCode: "123"}, wantCode: cperrors.ErrUsageBadLockCode},
		{name: "long code", req: Request{Filter: filter, LockCode: "12345"}, wantCode: cperrors.ErrUsageBadLockCode},
		{name: "alpha code", req: Request{Filter: filter, LockCode: "12a4"}, wantCode: cperrors.ErrUsageBadLockCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, cperrors.IsCode(err, tt.wantCode))
			}
		})
	}
}
