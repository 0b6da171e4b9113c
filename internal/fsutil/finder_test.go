package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("1 0\n1\n"), 0o600))
	}
}

func TestExpandInputs(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	writeFiles(t, root, "a.txt", "nested/b.hcl", "nested/deep/c.yaml", "notes.md")

	testCases := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "plain path passes through",
			args:     []string{filepath.Join(root, "a.txt")},
			expected: []string{filepath.Join(root, "a.txt")},
		},
		{
			name: "directory picks known extensions",
			args: []string{root},
			expected: []string{
				filepath.Join(root, "a.txt"),
				filepath.Join(root, "nested", "b.hcl"),
				filepath.Join(root, "nested", "deep", "c.yaml"),
			},
		},
		{
			name: "doublestar pattern",
			args: []string{filepath.Join(root, "**", "*.{hcl,yaml}")},
			expected: []string{
				filepath.Join(root, "nested", "b.hcl"),
				filepath.Join(root, "nested", "deep", "c.yaml"),
			},
		},
		{
			name:     "duplicates are dropped",
			args:     []string{filepath.Join(root, "a.txt"), filepath.Join(root, "*.txt")},
			expected: []string{filepath.Join(root, "a.txt")},
		},
		{
			name:     "missing file is left for the loader",
			args:     []string{filepath.Join(root, "absent.txt")},
			expected: []string{filepath.Join(root, "absent.txt")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExpandInputs(tc.args)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestExpandInputs_NoMatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := ExpandInputs([]string{filepath.Join(root, "*.hcl")})
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = ExpandInputs([]string{root})
	assert.ErrorIs(t, err, ErrNoMatch)
}
