package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	// Check if the 'club_state' table was created
	var stateTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='club_state'").Scan(&stateTableName)
	require.NoError(t, err, "Querying for club_state table should not produce an error")
	assert.Equal(t, "club_state", stateTableName, "The 'club_state' table should be created")

	// Check if the 'round_history' table was created
	var historyTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='round_history'").Scan(&historyTableName)
	require.NoError(t, err, "Querying for round_history table should not produce an error")
	assert.Equal(t, "round_history", historyTableName, "The 'round_history' table should be created")
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	// Running the migrations again against the same connection is a no-op.
	require.NoError(t, migrate(db, "../../migrations"))
}
