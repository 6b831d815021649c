package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresStore runs against the database in HISTORY_TEST_DATABASE_URL.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("HISTORY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("HISTORY_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	s := NewPostgresStore(pool)
	require.NoError(t, s.EnsureSchema(ctx))

	e := NewEntry(ContextWithIPAddress(ctx, "198.51.100.7"), "compras.csv")
	e.Rows = 3
	e.Encoding = "ISO-8859-1"
	e.SHA256 = "fa9915f8"
	require.NoError(t, s.Record(ctx, e))

	got, err := s.Recent(ctx, 50)
	require.NoError(t, err)

	var found *Entry
	for i := range got {
		if got[i].ID == e.ID {
			found = &got[i]
		}
	}
	require.NotNil(t, found, "recorded entry not returned")
	assert.Equal(t, "compras.csv", found.FileName)
	assert.Equal(t, 3, found.Rows)
	assert.Equal(t, "198.51.100.7", found.IPAddress)
	assert.Equal(t, StatusOK, found.Status)
}
