package session

import (
	"testing"

	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAppendPreservesOrder(t *testing.T) {
	table := NewTable()
	a := &models.Annotation{UUID: "a"}
	b := &models.Annotation{UUID: "b"}
	c := &models.Annotation{UUID: "c"}

	table.Append(a)
	table.Append(b)
	table.Append(c)

	all := table.All()
	require.Len(t, all, 3)
	assert.Same(t, a, all[0])
	assert.Same(t, b, all[1])
	assert.Same(t, c, all[2])
}

func TestTableUnsyncedFilter(t *testing.T) {
	table := NewTable()
	a := &models.Annotation{UUID: "a", Synced: true}
	b := &models.Annotation{UUID: "b"}
	c := &models.Annotation{UUID: "c"}

	table.Append(a)
	table.Append(b)
	table.Append(c)

	unsynced := table.Unsynced()
	require.Len(t, unsynced, 2)
	assert.Same(t, b, unsynced[0])
	assert.Same(t, c, unsynced[1])
}

func TestTableMarkSyncedByIdentity(t *testing.T) {
	table := NewTable()
	// Two field-identical records: only the appended one may flip
	a := &models.Annotation{Site: "Location 1"}
	twin := &models.Annotation{Site: "Location 1"}
	table.Append(a)

	table.MarkSynced([]*models.Annotation{twin})
	assert.False(t, a.Synced, "value-equal record must not match")

	table.MarkSynced([]*models.Annotation{a})
	assert.True(t, a.Synced)
	assert.Empty(t, table.Unsynced())
}

func TestTableClear(t *testing.T) {
	table := NewTable()
	table.Append(&models.Annotation{UUID: "a"})
	table.Append(&models.Annotation{UUID: "b"})

	table.Clear()
	assert.Zero(t, table.Len())
	assert.Empty(t, table.All())
	assert.Empty(t, table.Unsynced())
}

func TestTableAllIsASnapshot(t *testing.T) {
	table := NewTable()
	table.Append(&models.Annotation{UUID: "a"})

	all := table.All()
	table.Append(&models.Annotation{UUID: "b"})
	assert.Len(t, all, 1, "earlier snapshot must not grow")
}
