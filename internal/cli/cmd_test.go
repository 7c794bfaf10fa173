package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledes/internal/models"
)

func setTestEnv(t *testing.T, dsn string) {
	t.Helper()
	t.Setenv(ConfigEnv, "")
	t.Setenv("SUPABASE_DB_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LEDES_DATABASE_DRIVER", "sqlite3")
	t.Setenv("LEDES_DATABASE_DSN", dsn)
	t.Setenv("LEDES_LOG_LEVEL", "error")
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSeedWithMigrate(t *testing.T) {
	setTestEnv(t, ":memory:")

	out, err := runCmd(t, "seed", "--migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 10 entities")
}

func TestSnapshotWithoutTablesPrintsZeros(t *testing.T) {
	setTestEnv(t, ":memory:")

	out, err := runCmd(t, "snapshot")
	require.NoError(t, err)

	var stats models.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, models.Stats{}, stats)
}

func TestSnapshotWithoutStore(t *testing.T) {
	setTestEnv(t, "")

	out, err := runCmd(t, "snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalEntities": 0`)
}

func TestMigrateRequiresStore(t *testing.T) {
	setTestEnv(t, "")

	_, err := runCmd(t, "migrate")
	assert.ErrorContains(t, err, "not configured")
}
