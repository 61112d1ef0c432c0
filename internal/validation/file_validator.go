// Package validation checks input export files before processing.
package validation

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// xlsx and xls magic numbers. xlsx is a zip container, legacy xls an
// OLE2 compound document.
var (
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// FileValidator checks export files passed to the batch processor.
type FileValidator struct {
	logger *slog.Logger
}

func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInput checks that path exists, is a regular non-empty file and
// carries content matching its extension.
func (v *FileValidator) ValidateInput(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file %s is empty", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return v.validateMagic(path, zipMagic, "xlsx")
	case ".xls":
		return v.validateMagic(path, ole2Magic, "xls")
	case ".csv":
		return nil
	default:
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func (v *FileValidator) validateMagic(path string, magic []byte, kind string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, len(magic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("read %s header: %w", path, err)
	}
	if !bytes.Equal(header, magic) {
		v.logger.Warn("file header mismatch",
			slog.String("file", path),
			slog.String("expected", kind))
		return fmt.Errorf("file %s is not a valid %s file", path, kind)
	}
	return nil
}
