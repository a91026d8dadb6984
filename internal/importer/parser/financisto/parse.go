package financisto

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
)

const (
	markerStart = "#START"
	entityStart = "$ENTITY:"
	entityEnd   = "$$"

	// Notes can be long, the default token size of bufio.Scanner is not enough.
	maxLineSize = 16 * 1024 * 1024
)

var gzipMagic = []byte{0x1f, 0x8b}

// Parse tokenizes a Financisto backup.
//
// Backups written by Financisto are gzip compressed, but plain text exports
// are supported, too.
func Parse(r io.Reader) (Backup, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return Backup{}, fmt.Errorf("could not read data from backup: %w", err)
	}

	var content io.Reader = br
	if bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return Backup{}, fmt.Errorf("%w: %w", ErrNotABackup, err)
		}
		defer zr.Close()

		// Bytes after the gzip stream are not part of the backup
		zr.Multistream(false)
		content = zr
	}

	return parseLines(content)
}

func parseLines(r io.Reader) (Backup, error) {
	backup := Backup{
		Header: make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	// Header lines are only read before the first #START
	header := true
	var current *Record
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		switch {
		case text == markerStart:
			header = false

		case text == entityEnd:
			if current == nil {
				return Backup{}, fmt.Errorf("%w: line %d", ErrUnexpectedEntityEnd, line)
			}
			backup.Records = append(backup.Records, *current)
			current = nil

		case current != nil:
			key, value, ok := strings.Cut(text, ":")
			if !ok {
				continue
			}
			current.Fields[key] = value

		case strings.HasPrefix(text, entityStart):
			current = &Record{
				Entity: strings.TrimPrefix(text, entityStart),
				Fields: make(map[string]string),
			}

		case header:
			if key, value, ok := strings.Cut(text, ":"); ok {
				backup.Header[key] = value
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return Backup{}, fmt.Errorf("could not read data from backup: %w", err)
	}

	if current != nil {
		return Backup{}, fmt.Errorf("%w: %s", ErrUnterminatedEntity, current.Entity)
	}

	return backup, nil
}
