package flow

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/filex"
)

var (
	ErrNoPhotos      = errors.New("at least one photo is required")
	ErrFileTooLarge  = fmt.Errorf("photo exceeds %d MB", common.MaxPhotoSize/(1024*1024))
	ErrTooManyPhotos = errors.New("too many photos")
	ErrClosed        = errors.New("photo set closed")
)

// Photo is one staged image. Preview is a private copy owned by the set.
type Photo struct {
	Name        string
	Preview     string
	Size        int64
	ContentType string
}

// PhotoSet stages photos for an upload. Every staged photo gets a preview
// copy on disk; the copy is deleted when the photo is replaced, removed, or
// the set is closed.
type PhotoSet struct {
	mu     sync.Mutex
	dir    string
	limit  int
	photos []Photo
	closed bool
}

// NewPhotoSet creates a set keeping previews under dir. limit caps the
// number of photos; zero means no cap.
func NewPhotoSet(dir string, limit int) (*PhotoSet, error) {
	d, err := os.MkdirTemp(dir, "photos-*")
	if err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &PhotoSet{dir: d, limit: limit}, nil
}

// AddFile stages the file at path.
func (s *PhotoSet) AddFile(path string) (Photo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Photo{}, err
	}
	if fi.IsDir() {
		return Photo{}, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > common.MaxPhotoSize {
		return Photo{}, ErrFileTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkAddLocked(); err != nil {
		return Photo{}, err
	}

	preview, err := filex.CopyToTemp(s.dir, path)
	if err != nil {
		return Photo{}, err
	}
	return s.appendLocked(filepath.Base(path), preview, fi.Size())
}

// AddReader stages an upload received as a stream, e.g. from a browser.
func (s *PhotoSet) AddReader(name string, r io.Reader) (Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkAddLocked(); err != nil {
		return Photo{}, err
	}

	preview, n, err := filex.SaveTemp(s.dir, filepath.Ext(name), r, common.MaxPhotoSize)
	if errors.Is(err, filex.ErrLimitExceeded) {
		return Photo{}, ErrFileTooLarge
	}
	if err != nil {
		return Photo{}, err
	}
	return s.appendLocked(filepath.Base(name), preview, n)
}

// Replace stages the file at path in place of every staged photo.
func (s *PhotoSet) Replace(path string) (Photo, error) {
	s.Clear()
	return s.AddFile(path)
}

func (s *PhotoSet) checkAddLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.limit > 1 && len(s.photos) >= s.limit {
		return ErrTooManyPhotos
	}
	return nil
}

// appendLocked records a staged preview. A single-photo set swaps its
// photo instead of growing.
func (s *PhotoSet) appendLocked(name, preview string, size int64) (Photo, error) {
	ct, err := filex.ContentType(preview)
	if err != nil {
		_ = os.Remove(preview)
		return Photo{}, err
	}
	if s.limit == 1 {
		for len(s.photos) > 0 {
			s.releaseLocked(0)
		}
	}
	p := Photo{Name: name, Preview: preview, Size: size, ContentType: ct}
	s.photos = append(s.photos, p)
	return p, nil
}

func (s *PhotoSet) releaseLocked(i int) {
	_ = os.Remove(s.photos[i].Preview)
	s.photos = append(s.photos[:i], s.photos[i+1:]...)
}

// Remove drops the photo at index i.
func (s *PhotoSet) Remove(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.photos) {
		return fmt.Errorf("no photo at index %d", i)
	}
	s.releaseLocked(i)
	return nil
}

// Clear drops every photo but keeps the set usable.
func (s *PhotoSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.photos) > 0 {
		s.releaseLocked(len(s.photos) - 1)
	}
}

func (s *PhotoSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.photos)
}

// Photos returns a copy of the staged photos in order.
func (s *PhotoSet) Photos() []Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Photo(nil), s.photos...)
}

// Open opens every preview for upload. The returned function closes them.
func (s *PhotoSet) Open() ([]models.Upload, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]models.Upload, 0, len(s.photos))
	for _, p := range s.photos {
		f, err := os.Open(p.Preview)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open %s: %w", p.Name, err)
		}
		files = append(files, f)
		uploads = append(uploads, models.Upload{Filename: p.Name, ContentType: p.ContentType, Body: f})
	}
	return uploads, closeAll, nil
}

// Close releases every preview. The set cannot be used afterwards.
func (s *PhotoSet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.photos = nil
	return os.RemoveAll(s.dir)
}
