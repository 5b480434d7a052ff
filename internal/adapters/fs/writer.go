package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer implements ports.OutputWriter. Files whose content is unchanged are not rewritten,
// so watchers downstream of the output directory only see real changes.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores content at path through a temporary file and a rename.
func (w *Writer) Write(path, content string) (bool, error) {
	current, err := readExisting(path)
	if err != nil {
		return false, err
	}
	if current != nil && xxhash.Sum64(current) == xxhash.Sum64String(content) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return true, nil
}

// Diff returns a unified diff from the file at path to content. A missing file diffs as empty.
func (w *Writer) Diff(path, content string) (string, error) {
	current, err := readExisting(path)
	if err != nil {
		return "", err
	}
	if current != nil && xxhash.Sum64(current) == xxhash.Sum64String(content) {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(content),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// readExisting returns the content of path, nil if it does not exist.
func readExisting(path string) ([]byte, error) {
	// #nosec G304 -- output paths come from the build configuration
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrOutputReadFailed.Error()), "path", path)
	}
	return data, nil
}
