package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatementPath(t *testing.T) {
	base := t.TempDir()
	store := NewDocumentStore(base, zap.NewNop())

	path, err := store.StatementPath("rpt-123")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "rpt-123", "rincian-biaya-rpt-123.xlsx"), path)

	info, err := os.Stat(filepath.Join(base, "rpt-123"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReportDir_RejectsTraversal(t *testing.T) {
	store := NewDocumentStore(t.TempDir(), zap.NewNop())

	for _, id := range []string{"", ".", "..", "../etc", "a/b", `a\b`} {
		_, err := store.ReportDir(id)
		assert.Error(t, err, "id %q must be rejected", id)
	}
}
