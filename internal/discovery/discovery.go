package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every snapshot below the root.
const DefaultPattern = "**/*.{json,yaml,yml}"

// snapshotExtensions are the file types a snapshot can be stored as.
var snapshotExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// File represents a discovered snapshot file
type File struct {
	Path    string
	RelPath string
	Size    int64
}

// FileDiscovery finds snapshot files below a root directory
type FileDiscovery struct {
	rootPath string
	exclude  []string
}

// NewFileDiscovery creates a new FileDiscovery instance. Exclude patterns
// are matched against paths relative to rootPath.
func NewFileDiscovery(rootPath string, exclude []string) *FileDiscovery {
	return &FileDiscovery{
		rootPath: rootPath,
		exclude:  exclude,
	}
}

// DiscoverFiles returns the snapshot files matching pattern, sorted by
// relative path. An empty pattern means DefaultPattern.
func (fd *FileDiscovery) DiscoverFiles(pattern string) ([]File, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
	if err != nil {
		return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
	}

	var files []File
	for _, match := range matches {
		if fd.isExcluded(match) {
			continue
		}
		if f, ok := fd.processMatch(match); ok {
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func (fd *FileDiscovery) isExcluded(relPath string) bool {
	for _, pattern := range fd.exclude {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// processMatch converts a glob match into a File, returning false if the match should be skipped.
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	if !snapshotExtensions[strings.ToLower(filepath.Ext(match))] {
		return File{}, false
	}

	fullPath := filepath.Join(fd.rootPath, filepath.FromSlash(match))
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return File{}, false
	}

	return File{
		Path:    fullPath,
		RelPath: match,
		Size:    info.Size(),
	}, true
}

// ValidateFilePath checks that path names a readable regular file and
// returns its absolute form.
func ValidateFilePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	if !snapshotExtensions[strings.ToLower(filepath.Ext(absPath))] {
		return "", fmt.Errorf("unsupported file type: %s. lifeindex reads .json, .yaml and .yml snapshots", filepath.Ext(absPath))
	}

	return absPath, nil
}
