// Package output provides the destinations of a rendered changelog.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// DefaultFileName is the file written when a file output has no path.
const DefaultFileName = "CHANGELOG.md"

// WriteStrategy selects how a file output treats existing content.
type WriteStrategy string

// Write strategies.
const (
	StrategyReplace WriteStrategy = "replace"
	StrategyAppend  WriteStrategy = "append"
	StrategyPrepend WriteStrategy = "prepend"
)

// ParseWriteStrategy parses a strategy name. An empty name is replace.
func ParseWriteStrategy(s string) (WriteStrategy, error) {
	switch WriteStrategy(s) {
	case "", StrategyReplace:
		return StrategyReplace, nil
	case StrategyAppend:
		return StrategyAppend, nil
	case StrategyPrepend:
		return StrategyPrepend, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidWriteStrategy, s)
	}
}

// Ensure Writer and File implement domain.ChangelogOutput.
var (
	_ domain.ChangelogOutput = (*Writer)(nil)
	_ domain.ChangelogOutput = (*File)(nil)
)

// Writer writes lines to an io.Writer such as stdout.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteLines writes each line followed by a newline.
func (o *Writer) WriteLines(lines ...string) error {
	bw := bufio.NewWriter(o.w)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// File writes lines to a file using a WriteStrategy.
// Fields are ordered to minimize memory padding.
type File struct {
	path     string
	strategy WriteStrategy
}

// NewFile creates a File output. An empty path selects DefaultFileName in
// the working directory.
func NewFile(path string, strategy WriteStrategy) *File {
	if path == "" {
		path = DefaultFileName
	}
	if strategy == "" {
		strategy = StrategyReplace
	}
	return &File{path: path, strategy: strategy}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Strategy returns the write strategy.
func (f *File) Strategy() WriteStrategy {
	return f.strategy
}

// WriteLines writes the lines to the file according to the strategy.
// Missing files are created for every strategy.
func (f *File) WriteLines(lines ...string) error {
	content := joinLines(lines)

	switch f.strategy {
	case StrategyReplace:
		return f.write(content, os.O_CREATE|os.O_TRUNC|os.O_WRONLY)
	case StrategyAppend:
		return f.write(content, os.O_CREATE|os.O_APPEND|os.O_WRONLY)
	case StrategyPrepend:
		existing, err := os.ReadFile(f.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", f.path, err)
		}
		return f.write(append(content, existing...), os.O_CREATE|os.O_TRUNC|os.O_WRONLY)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidWriteStrategy, f.strategy)
	}
}

func (f *File) write(content []byte, flag int) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory for %s: %w", f.path, err)
		}
	}

	// G302: Changelogs are committed with the repository
	file, err := os.OpenFile(f.path, flag, 0o644) //nolint:gosec // Changelog readable by everyone
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return file.Close()
}

func joinLines(lines []string) []byte {
	var size int
	for _, line := range lines {
		size += len(line) + 1
	}
	buf := make([]byte, 0, size)
	for _, line := range lines {
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	return buf
}
