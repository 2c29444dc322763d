package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword reads without echo; tests replace it.
var readPassword = term.ReadPassword

// readLine returns the next line without its CR/LF. A final line without a
// newline is returned as is; io.EOF is reported only when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText prompts with "label: " on w and returns one trimmed line.
func GetSimpleText(reader *bufio.Reader, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	return strings.TrimSpace(line), err
}

// GetPassword reads a password from the terminal on stdin. Wipe the result
// with common.WipeByteArray when done.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	return pw, err
}

// GetLines prompts on w and collects raw lines until an empty line or EOF.
// Only CR/LF are trimmed.
func GetLines(reader *bufio.Reader, label string, w io.Writer) ([]string, error) {
	if _, err := fmt.Fprintf(w, "%s (empty line to finish):\n", label); err != nil {
		return nil, err
	}

	lines := make([]string, 0)
	for {
		line, err := readLine(reader)
		if err != nil || line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// GetMultiline is GetLines joined with '\n' and trimmed.
func GetMultiline(reader *bufio.Reader, label string, w io.Writer) (string, error) {
	lines, err := GetLines(reader, label, w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
