package html

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraphs become blank lines",
			input:    "<p>Article 19.</p><p>Freedom of speech.</p>",
			expected: "Article 19.\n\nFreedom of speech.",
		},
		{
			name:     "scripts and head removed",
			input:    "<head><title>x</title></head><script>alert(1)</script><p>Text</p>",
			expected: "Text",
		},
		{
			name:     "entities decoded",
			input:    "<p>Law &amp; Order &mdash; Part&nbsp;XI</p>",
			expected: "Law & Order — Part XI",
		},
		{
			name:     "raw non-breaking spaces folded",
			input:    "Article\u00a0\u00a021",
			expected: "Article 21",
		},
		{
			name:     "line breaks",
			input:    "Clause (1)<br/>Clause (2)",
			expected: "Clause (1)\nClause (2)",
		},
		{
			name:     "comments removed",
			input:    "<!-- draft -->Final",
			expected: "Final",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strip(tt.input))
		})
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Schedule.HTML")
	require.NoError(t, os.WriteFile(path, []byte("<html><body><h1>Seventh Schedule</h1><p>Union List</p></body></html>"), 0600))

	doc, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Seventh Schedule\n\nUnion List", doc.Pages[0].Text)
	assert.Equal(t, "Schedule.HTML", doc.Pages[0].Source)
}

func TestExtract_Missing(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}
