package attachment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func TestSaveLaysOutFolderTree(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	path, err := store.Save("12345", testDate, "B0100000001", "101000001", "factura.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)

	want := filepath.Join("12345", "2024", "03", "B0100000001_101000001.pdf")
	assert.True(t, strings.HasSuffix(path, want), "got %s", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestSaveKeepsExistingFileOnCollision(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save("12345", testDate, "B0100000001", "101000001", "a.pdf", strings.NewReader("primero"))
	require.NoError(t, err)

	second, err := store.Save("12345", testDate, "B0100000001", "101000001", "b.pdf", strings.NewReader("segundo"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "primero", string(data))

	base := filepath.Base(second)
	assert.True(t, strings.HasPrefix(base, "B0100000001_101000001_"), "got %s", base)
}

func TestSaveSanitizesNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	path, err := store.Save("12345", testDate, "B01/0001", "101 000 001", "nota.PDF", strings.NewReader("x"))
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.Equal(t, "B01-0001_101-000-001.pdf", base)
}

func TestSaveDefaultsExtension(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	path, err := store.Save("12345", testDate, "B0100000002", "101000001", "adjunto", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".bin"), "got %s", path)
}

func TestKeyMirrorsLocalLayout(t *testing.T) {
	store := NewLocalStore("adjuntos")

	key := store.Key("12345", testDate, "B0100000001", "101000001", "factura.pdf")
	assert.Equal(t, "12345/2024/03/B0100000001_101000001.pdf", key)
}
