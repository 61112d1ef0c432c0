// Package files locates marketplace export files on disk for batch runs.
package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes a discovered export file.
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Discovery finds export files in input directories.
type Discovery struct {
	logger *slog.Logger
}

func NewDiscovery(logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{logger: logger}
}

// FindExports returns the processable export files in dir, oldest first.
// Excel lock files ("~$" prefix) and hidden files are skipped.
func (d *Discovery) FindExports(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !processableName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			d.logger.Warn("skipping unreadable file",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()))
			continue
		}
		found = append(found, FileInfo{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].ModTime.Equal(found[j].ModTime) {
			return found[i].Name < found[j].Name
		}
		return found[i].ModTime.Before(found[j].ModTime)
	})

	d.logger.Info("export files discovered",
		slog.String("dir", dir),
		slog.Int("count", len(found)))
	return found, nil
}

// Latest returns the newest file of a discovery result.
func Latest(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}
	return files[len(files)-1], true
}

func processableName(name string) bool {
	if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".csv":
		return true
	default:
		return false
	}
}
