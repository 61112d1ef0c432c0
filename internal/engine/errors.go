package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoActiveRows is returned when the cancellation filter removed every row
// of the batch. The pipeline refuses to emit an empty file silently.
var ErrNoActiveRows = errors.New("tidak ada data setelah filter batal")

// ErrEmptyBatch is returned when the input batch carries no rows at all.
var ErrEmptyBatch = errors.New("semua file kosong atau tidak valid")

// MissingColumnsError reports every canonical field that matched no header in
// the batch's representative row, so the source file can be fixed in one
// pass.
type MissingColumnsError struct {
	Fields []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("kolom tidak ditemukan: %s", strings.Join(e.Fields, ", "))
}

// IsFatal reports whether err is one of the engine's batch-aborting errors,
// as opposed to an I/O failure from a collaborator.
func IsFatal(err error) bool {
	var missing *MissingColumnsError
	return errors.Is(err, ErrNoActiveRows) || errors.Is(err, ErrEmptyBatch) || errors.As(err, &missing)
}
