package model

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ToolAuditLog{}))

	prev := DB
	DB = db
	t.Cleanup(func() { DB = prev })
}

func TestRecordToolInvocation(t *testing.T) {
	setupTestDB(t)

	RecordToolInvocation(ToolInvocation{
		RunID:       "run-1",
		Tool:        "get_volumes",
		Filter:      "alpha",
		Limit:       10,
		DetailLevel: "basic",
		ResultCount: 2,
	})
	RecordToolInvocation(ToolInvocation{
		RunID:       "run-2",
		Tool:        "get_instances",
		DetailLevel: "detailed",
		Err:         errors.New("nova timed out"),
	})

	rows, err := ListAuditLogs(10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// newest first
	assert.Equal(t, "run-2", rows[0].RunID)
	assert.False(t, rows[0].Success)
	assert.Equal(t, "nova timed out", rows[0].ErrorMessage)

	assert.Equal(t, "run-1", rows[1].RunID)
	assert.True(t, rows[1].Success)
	assert.Equal(t, 2, rows[1].ResultCount)
	assert.Equal(t, 10, rows[1].Limit)
	assert.Empty(t, rows[1].ErrorMessage)
}

func TestRecordToolInvocation_NoDatabaseIsNoOp(t *testing.T) {
	prev := DB
	DB = nil
	t.Cleanup(func() { DB = prev })

	assert.NotPanics(t, func() {
		RecordToolInvocation(ToolInvocation{RunID: "run-3", Tool: "get_networks"})
	})

	rows, err := ListAuditLogs(10)
	assert.NoError(t, err)
	assert.Nil(t, rows)
}

func TestListAuditLogs_LimitApplies(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 5; i++ {
		RecordToolInvocation(ToolInvocation{RunID: "run", Tool: "get_images", DetailLevel: "full"})
	}

	rows, err := ListAuditLogs(3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
