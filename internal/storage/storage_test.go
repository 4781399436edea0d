package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilename_KeepsExtension(t *testing.T) {
	name := NewFilename("Photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".JPG"))
	assert.Len(t, name, 36+len(".JPG"))

	assert.NotEqual(t, NewFilename("a.png"), NewFilename("a.png"))
	assert.Len(t, NewFilename("noext"), 36)
}

func TestLocalStorage_Save(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)

	url, err := s.Save(context.Background(), DirMedicines, "abc.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/medicines/abc.png", url)

	data, err := os.ReadFile(filepath.Join(root, "medicines", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorage_StripsDirectoriesFromName(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)

	url, err := s.Save(context.Background(), DirUsers, "../../etc/passwd", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/users/passwd", url)

	_, err = os.Stat(filepath.Join(root, "users", "passwd"))
	assert.NoError(t, err)
}

func TestLocalStorage_Remove(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)
	ctx := context.Background()

	_, err := s.Save(ctx, DirUsers, "amma.png", strings.NewReader("x"), "image/png")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, DirUsers, "amma.png"))
	_, err = os.Stat(filepath.Join(root, "users", "amma.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(ctx, DirUsers, "amma.png"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/family-meds/users/a.jpg",
		PublicURL("family-meds", "users/a.jpg"))
}
