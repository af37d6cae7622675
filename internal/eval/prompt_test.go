package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("# rubric\n\ngrade strictly\n"), 0o644))

	prompt, err := LoadPrompt(path)
	require.NoError(t, err)
	require.Equal(t, "# rubric\n\ngrade strictly", prompt)
}

func TestLoadPromptEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	_, err := LoadPrompt(path)
	require.Error(t, err)
}

func TestLoadPromptMissing(t *testing.T) {
	_, err := LoadPrompt(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
}
