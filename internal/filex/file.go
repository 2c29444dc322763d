// Package filex contains the file helpers used when staging photos.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// EnsureSubDir creates base/name (base defaults to the working directory)
// and returns its absolute path.
func EnsureSubDir(base, name string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// ErrLimitExceeded is returned by SaveTemp when r holds more than limit bytes.
var ErrLimitExceeded = errors.New("size limit exceeded")

// SaveTemp writes r into a new preview file inside dir whose name ends in
// ext. At most limit bytes are accepted when limit is positive; the partial
// file is removed otherwise.
func SaveTemp(dir, ext string, r io.Reader, limit int64) (string, int64, error) {
	out, err := os.CreateTemp(dir, "preview-*"+ext)
	if err != nil {
		return "", 0, fmt.Errorf("create temp in %s: %w", dir, err)
	}

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}
	n, err := io.Copy(out, src)
	if err == nil && limit > 0 && n > limit {
		err = ErrLimitExceeded
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out.Name())
		return "", 0, err
	}
	return out.Name(), n, nil
}

// CopyToTemp copies src into a new uniquely named file inside dir and
// returns the copy's path. The extension of src is kept.
func CopyToTemp(dir, src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.CreateTemp(dir, "preview-*"+filepath.Ext(src))
	if err != nil {
		return "", fmt.Errorf("create temp in %s: %w", dir, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("close %s: %w", out.Name(), err)
	}
	return out.Name(), nil
}

// ContentType sniffs the MIME type of the file at path from its first
// 512 bytes.
func ContentType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
