package flat

import (
	"os"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// assertSameManifest compares manifests, treating timestamps by instant.
func assertSameManifest(t *testing.T, want, got domain.IndexManifest) {
	t.Helper()
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", want.CreatedAt, got.CreatedAt)
	want.CreatedAt, got.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, want, got)
}

// rewriteCount overwrites the entry count in a manifest file.
func rewriteCount(t *testing.T, path string, count int) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var mf manifestFile
	require.NoError(t, toml.Unmarshal(data, &mf))
	mf.Count = count

	data, err = toml.Marshal(mf)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}
