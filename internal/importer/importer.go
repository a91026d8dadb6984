// Package importer migrates complete Financisto backups.
package importer

import (
	"fmt"
	"io"

	"github.com/envelope-zero/financisto2bluecoins/internal/importer/helpers"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/envelope-zero/financisto2bluecoins/internal/migrate"
	"github.com/rs/zerolog/log"
)

// Header keys written by Financisto.
const (
	HeaderPackage         = "PACKAGE"
	HeaderVersionCode     = "VERSION_CODE"
	HeaderVersionName     = "VERSION_NAME"
	HeaderDatabaseVersion = "DATABASE_VERSION"
)

// Result is the outcome of an import.
type Result struct {
	migrate.Result
	Header   map[string]string // Header of the backup
	Checksum string            // SHA256 of the backup file as read
}

// Version is the Financisto version that created the backup.
func (r Result) Version() string {
	return r.Header[HeaderVersionName]
}

// Import reads a backup from r and migrates it.
//
// If the backup cannot be parsed, the returned result still carries
// the checksum of the input.
func Import(r io.Reader, opts migrate.Options) (Result, error) {
	checksum := helpers.NewChecksum(r)

	backup, err := financisto.Parse(checksum)
	if err != nil {
		_ = checksum.Drain()
		return Result{Checksum: checksum.String()}, fmt.Errorf("could not parse backup: %w", err)
	}

	// Trailing data after the end of the gzip stream is part of the file
	if err := checksum.Drain(); err != nil {
		return Result{Checksum: checksum.String()}, fmt.Errorf("could not read data from backup: %w", err)
	}

	result := Result{
		Header:   backup.Header,
		Checksum: checksum.String(),
	}

	log.Debug().Str("version", result.Version()).Int("records", len(backup.Records)).Str("checksum", result.Checksum).Msg("parsed backup")

	data, err := financisto.Decode(backup.Records)
	if err != nil {
		return result, err
	}

	result.Result, err = migrate.Run(data, opts)
	if err != nil {
		return result, err
	}

	return result, nil
}
