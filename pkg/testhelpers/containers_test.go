//go:build integration

package testhelpers

import (
	"context"
	"testing"
)

func TestReplicaDB_SchemaMigrated(t *testing.T) {
	replica := GetReplicaDB(t)

	ctx := context.Background()

	for _, table := range []string{"sync_records", "sync_watermarks"} {
		var count int
		err := replica.DB.QueryRow(ctx,
			"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1",
			table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to check for %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist after migrations", table)
		}
	}
}
