package boards

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.yaml
var embedded embed.FS

// Loader handles loading boards from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over any file system.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// NewDirLoader creates a loader rooted at a directory on disk.
func NewDirLoader(root string) *Loader {
	return NewLoader(os.DirFS(root))
}

// Embedded returns a loader over the boards compiled into the binary.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return NewLoader(sub)
}

// LoadAll recursively scans and loads all board files.
// Invalid files are skipped. Returns boards sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		board, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		boards = append(boards, board)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boards: walking directory: %w", err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})

	return boards, nil
}

// LoadFile loads a single board file relative to the loader root.
func (l *Loader) LoadFile(p string) (Board, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Board{}, fmt.Errorf("boards: reading file %s: %w", p, err)
	}

	board, err := ParseYAML(data)
	if err != nil {
		return Board{}, fmt.Errorf("boards: parsing file %s: %w", p, err)
	}
	board.FilePath = p
	return board, nil
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("boards: board not found: %s", id)
}

// ReadFile parses a board file anywhere on disk.
func ReadFile(filename string) (Board, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Board{}, fmt.Errorf("boards: reading file %s: %w", filename, err)
	}
	board, err := ParseYAML(data)
	if err != nil {
		return Board{}, fmt.Errorf("boards: parsing file %s: %w", filename, err)
	}
	board.FilePath = filename
	return board, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
