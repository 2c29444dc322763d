package flow

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

func writePhoto(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestPhotoSet_PreviewsReleasedOnRemoveAndClose(t *testing.T) {
	src := t.TempDir()
	set, err := NewPhotoSet(t.TempDir(), 0)
	require.NoError(t, err)

	a, err := set.AddFile(writePhoto(t, src, "a.jpg", "aaa"))
	require.NoError(t, err)
	b, err := set.AddFile(writePhoto(t, src, "b.jpg", "bbb"))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, exists(a.Preview))
	assert.Equal(t, "a.jpg", a.Name)

	require.NoError(t, set.Remove(0))
	assert.False(t, exists(a.Preview))
	assert.Equal(t, []Photo{b}, set.Photos())
	require.Error(t, set.Remove(5))

	require.NoError(t, set.Close())
	assert.False(t, exists(b.Preview))
	assert.Zero(t, set.Len())

	_, err = set.AddFile(writePhoto(t, src, "c.jpg", "ccc"))
	require.ErrorIs(t, err, ErrClosed)
	require.NoError(t, set.Close())
}

func TestPhotoSet_SinglePhotoIsReplaced(t *testing.T) {
	src := t.TempDir()
	set, err := NewPhotoSet(t.TempDir(), 1)
	require.NoError(t, err)
	defer set.Close()

	first, err := set.AddFile(writePhoto(t, src, "a.jpg", "aaa"))
	require.NoError(t, err)
	second, err := set.Replace(writePhoto(t, src, "b.jpg", "bbb"))
	require.NoError(t, err)

	assert.False(t, exists(first.Preview))
	assert.True(t, exists(second.Preview))
	assert.Equal(t, 1, set.Len())

	third, err := set.AddReader("c.png", strings.NewReader("ccc"))
	require.NoError(t, err)
	assert.False(t, exists(second.Preview))
	assert.Equal(t, []Photo{third}, set.Photos())
}

func TestPhotoSet_RejectsOversizePhotos(t *testing.T) {
	src := t.TempDir()
	set, err := NewPhotoSet(t.TempDir(), 1)
	require.NoError(t, err)
	defer set.Close()

	kept, err := set.AddFile(writePhoto(t, src, "ok.jpg", "ok"))
	require.NoError(t, err)

	big := bytes.Repeat([]byte{'x'}, common.MaxPhotoSize+1)
	bigPath := filepath.Join(src, "big.jpg")
	require.NoError(t, os.WriteFile(bigPath, big, 0o600))

	_, err = set.AddFile(bigPath)
	require.ErrorIs(t, err, ErrFileTooLarge)
	_, err = set.AddReader("big.jpg", bytes.NewReader(big))
	require.ErrorIs(t, err, ErrFileTooLarge)

	assert.Equal(t, []Photo{kept}, set.Photos())
	assert.True(t, exists(kept.Preview))
}

func TestPhotoSet_Limit(t *testing.T) {
	set, err := NewPhotoSet(t.TempDir(), 2)
	require.NoError(t, err)
	defer set.Close()

	_, err = set.AddReader("a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = set.AddReader("b.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	_, err = set.AddReader("c.jpg", strings.NewReader("c"))
	require.ErrorIs(t, err, ErrTooManyPhotos)
}

func TestPhotoSet_OpenReadsPreviews(t *testing.T) {
	set, err := NewPhotoSet(t.TempDir(), 0)
	require.NoError(t, err)
	defer set.Close()

	_, err = set.AddReader("../../a.jpg", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = set.AddReader("b.jpg", strings.NewReader("second"))
	require.NoError(t, err)

	uploads, closeAll, err := set.Open()
	require.NoError(t, err)
	defer closeAll()

	require.Len(t, uploads, 2)
	assert.Equal(t, "a.jpg", uploads[0].Filename)
	body, err := io.ReadAll(uploads[1].Body)
	require.NoError(t, err)
	assert.Equal(t, "second", string(body))
}
