package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "trims surrounding spaces", input: "  Dompet hitam \n", want: "Dompet hitam"},
		{name: "CRLF", input: "Gedung A\r\n", want: "Gedung A"},
		{name: "last line without newline", input: "Kantin", want: "Kantin"},
		{name: "only first line consumed", input: "satu\ndua\n", want: "satu"},
		{name: "nothing left", input: "", wantErr: io.EOF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(rdr(tc.input), "Lokasi", &out)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Lokasi: ", out.String())
		})
	}
}

func TestGetSimpleText_SharedReader(t *testing.T) {
	in := rdr("budi@kampus.ac.id\nhome\n")
	var out bytes.Buffer

	email, err := GetSimpleText(in, "Email", &out)
	require.NoError(t, err)
	assert.Equal(t, "budi@kampus.ac.id", email)

	line, err := in.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "home\n", line)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("rahasia"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "rahasia", string(pw))
	assert.Equal(t, "Password: \n", out.String())

	boom := errors.New("no tty")
	readPassword = func(int) ([]byte, error) { return nil, boom }
	_, err = GetPassword(&out)
	require.ErrorIs(t, err, boom)
}

func TestGetLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "stops on empty line", input: "a.jpg\nb.jpg\n\nrest\n", expected: []string{"a.jpg", "b.jpg"}},
		{name: "CRLF", input: "a.jpg\r\nb.jpg\r\n\r\n", expected: []string{"a.jpg", "b.jpg"}},
		{name: "immediate blank line", input: "\n", expected: []string{}},
		{name: "EOF ends the list", input: "a.jpg\nb.jpg", expected: []string{"a.jpg", "b.jpg"}},
		{name: "inner spaces kept", input: " foto bukti.jpg \n\n", expected: []string{" foto bukti.jpg "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetLines(rdr(tc.input), "Foto", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Contains(t, out.String(), "Foto")
		})
	}
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("  Warna hitam\nada stiker\n\n\n"), "Deskripsi", &out)
	require.NoError(t, err)
	assert.Equal(t, "Warna hitam\nada stiker", got)
}
