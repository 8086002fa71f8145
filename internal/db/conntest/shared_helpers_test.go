//go:build conntest || azure

package conntest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vvka-141/dvgen/internal/db"
	"github.com/vvka-141/dvgen/internal/logging"
	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/services"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

func newTestIntrospector(t *testing.T) *services.IntrospectionService {
	t.Helper()
	return services.NewIntrospectionService(db.NewConnector, logging.NewNullLogger())
}

func execStatements(t *testing.T, config *dvgen.ConnectionConfig, statements []string) {
	t.Helper()
	ctx := context.Background()

	connector, err := db.NewConnector(config)
	if err != nil {
		t.Fatalf("create connector: %v", err)
	}
	pool, err := connector.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

// seedSourceSchema creates a small staging schema so introspection has
// something to read. The schema is dropped on cleanup.
func seedSourceSchema(t *testing.T, config *dvgen.ConnectionConfig) {
	t.Helper()

	execStatements(t, config, []string{
		`CREATE SCHEMA IF NOT EXISTS conntest_staging`,
		`CREATE TABLE IF NOT EXISTS conntest_staging.customer (
			customer_id integer NOT NULL,
			customer_name text,
			rec_src text NOT NULL,
			load_dts timestamptz NOT NULL
		)`,
	})

	t.Cleanup(func() {
		execStatements(t, config, []string{
			`DROP SCHEMA IF EXISTS conntest_staging CASCADE`,
		})
	})
}

// introspectSeededSchema runs a full introspection of the seeded staging
// schema and returns the resulting model.
func introspectSeededSchema(t *testing.T, config *dvgen.ConnectionConfig) *model.Model {
	t.Helper()

	modelPath := filepath.Join(t.TempDir(), "model.yaml")
	svc := newTestIntrospector(t)

	m, err := svc.Introspect(context.Background(), dvgen.IntrospectConfig{
		ModelPath:         modelPath,
		ConnectionString:  db.BuildConnectionString(config),
		Schemas:           []string{"conntest_staging"},
		AuthMethod:        config.AuthMethod,
		AzureTenantID:     config.AzureTenantID,
		AzureClientID:     config.AzureClientID,
		AzureClientSecret: config.AzureClientSecret,
	})
	if err != nil {
		t.Fatalf("introspect: %v", err)
	}
	return m
}
