package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripts(t *testing.T) {
	scripts, err := Scripts()

	require.NoError(t, err)
	require.NotEmpty(t, scripts)
	assert.Equal(t, "0001_init.sql", scripts[0].Name)
	assert.Contains(t, scripts[0].SQL, "UNIQUE (lease_id, kind, dedupe_key)")
	assert.Contains(t, scripts[0].SQL, "UNIQUE (lease_id, period)")
}
