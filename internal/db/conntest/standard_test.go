//go:build conntest

package conntest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/dvgen/internal/db"
)

func TestStandardConnection_UserPassword(t *testing.T) {
	config := parseStdConnString(t)
	pool := connectWithConfig(t, config)
	pingSucceeds(t, pool)

	version := queryVersion(t, pool)
	assert.Contains(t, version, "PostgreSQL")
}

func TestStandardConnection_WrongPassword(t *testing.T) {
	config := parseStdConnString(t)
	config.Password = "definitely-wrong-password"

	connector, err := db.NewConnector(config)
	require.NoError(t, err)

	_, err = connector.Connect(context.Background())
	require.Error(t, err)
	assert.True(t,
		strings.Contains(err.Error(), "password") ||
			strings.Contains(err.Error(), "authentication"),
		"error should mention authentication: %v", err)
}

func TestStandardConnection_Introspect(t *testing.T) {
	config := parseStdConnString(t)
	config.SSLMode = "disable"

	seedSourceSchema(t, config)

	m := introspectSeededSchema(t, config)
	require.Len(t, m.Tables, 1)

	table := m.Tables[0]
	assert.Equal(t, "conntest_staging", table.Schema)
	assert.Equal(t, "customer", table.Name)

	names := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"customer_id", "customer_name", "rec_src", "load_dts"}, names)
}
