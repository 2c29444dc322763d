// Package netx builds request bodies for the upload endpoints.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

type part struct {
	field       string
	filename    string
	contentType string
	body        io.Reader
}

// Form accumulates multipart/form-data fields and files in insertion
// order. Repeating a file field name sends several files under one name.
type Form struct {
	fields [][2]string
	files  []part
}

func NewForm() *Form {
	return &Form{}
}

// Field adds a text field.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// File adds a file part read from r when the form is encoded.
func (f *Form) File(field, filename, contentType string, r io.Reader) *Form {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	f.files = append(f.files, part{field: field, filename: filename, contentType: contentType, body: r})
	return f
}

// Len reports how many file parts were added.
func (f *Form) Len() int {
	return len(f.files)
}

// Encode renders the form and returns the body with its Content-Type,
// boundary included.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}

	for _, p := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.field), escapeQuotes(p.filename)))
		h.Set("Content-Type", p.contentType)

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.field, err)
		}
		if _, err := io.Copy(pw, p.body); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", p.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
