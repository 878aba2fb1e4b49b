// Package source reads txt2pdf documents into the line sequence expected by
// the format package: decoded to UTF-8, NFC-normalized, blank lines removed.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLineLength caps a single input line (1 MiB).
const MaxLineLength = 1 << 20

// Sentinel errors for reading documents.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrLineTooLong = errors.New("input line too long")
)

type bom int

const (
	bomNone bom = iota
	bomUTF8
	bomUTF16LE
	bomUTF16BE
)

func detectBOM(head []byte) bom {
	switch {
	case len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF:
		return bomUTF8
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		return bomUTF16LE
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		return bomUTF16BE
	}
	return bomNone
}

// decoder wraps r so it yields UTF-8, consuming any byte order mark.
func decoder(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	switch detectBOM(head) {
	case bomUTF8:
		_, _ = br.Discard(3)
		return br, nil
	case bomUTF16LE:
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()), nil
	case bomUTF16BE:
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()), nil
	}
	return br, nil
}

// ReadLines reads a document and returns its non-blank lines in order.
// Lines are split on "\n" with a trailing "\r" removed; whitespace-only
// lines count as blank. Kept lines are otherwise unchanged.
func ReadLines(r io.Reader) ([]string, error) {
	dec, err := decoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	scanner := bufio.NewScanner(transform.NewReader(dec, norm.NFC))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrLineTooLong, MaxLineLength)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return lines, nil
}

// ReadString is ReadLines over an in-memory document.
func ReadString(s string) ([]string, error) {
	return ReadLines(strings.NewReader(s))
}

// ReadBytes is ReadLines over an in-memory document.
func ReadBytes(b []byte) ([]string, error) {
	return ReadLines(bytes.NewReader(b))
}

// ReadFile reads the document stored at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-provided document path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	defer func() { _ = f.Close() }()

	return ReadLines(f)
}
