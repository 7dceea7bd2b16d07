package archive_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.zip")
	require.NoError(t, os.WriteFile(path, buildZip(t, entries), 0o644))
	return path
}

func TestExtractFiles(t *testing.T) {
	path := writeZip(t, map[string]string{
		"src/Bot.cs":    "class Bot {}",
		"src/.hidden":   "secret",
		"BotTests.cs":   "class BotTests {}",
		"nested/dir/":   "",
		"nested/Aux.cs": "class Aux {}",
	})

	files, err := archive.New().ExtractFiles(path)
	require.NoError(t, err)

	names := make(map[string]string)
	for _, f := range files {
		names[f.FileName] = f.Code
	}
	assert.Len(t, files, 3)
	assert.Equal(t, "class Bot {}", names["Bot.cs"], "paths are flattened to base names")
	assert.Contains(t, names, "BotTests.cs")
	assert.Contains(t, names, "Aux.cs")
	assert.NotContains(t, names, ".hidden")
}

func TestExtractFiles_MissingArchive(t *testing.T) {
	_, err := archive.New().ExtractFiles(filepath.Join(t.TempDir(), "gone.zip"))
	assert.Error(t, err)
}

func TestUnpack(t *testing.T) {
	data := buildZip(t, map[string]string{
		"template/Bot.cs":     "class Bot {}",
		"template/Project.cs": "class Project {}",
	})

	dest := t.TempDir()
	names, err := archive.New().Unpack(data, dest)
	require.NoError(t, err)
	assert.Len(t, names, 2)

	content, err := os.ReadFile(filepath.Join(dest, "template", "Bot.cs"))
	require.NoError(t, err)
	assert.Equal(t, "class Bot {}", string(content))
}

func TestUnpack_RejectsEscapingEntries(t *testing.T) {
	data := buildZip(t, map[string]string{
		"../escape.cs": "bad",
	})

	_, err := archive.New().Unpack(data, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestUnpack_GarbageData(t *testing.T) {
	_, err := archive.New().Unpack([]byte("not a zip"), t.TempDir())
	assert.Error(t, err)
}
