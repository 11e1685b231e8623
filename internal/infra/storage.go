package infra

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Storage persists uploaded attachments under
// <root>/<year>/<month>/<timestamp>_<sanitized-name> and lists them back.
type Storage struct {
	root string
}

func NewStorage(root string) *Storage { return &Storage{root: root} }

// Root returns the base directory, used for static serving.
func (s *Storage) Root() string { return s.root }

// SanitizeName strips path separators and anything outside [a-zA-Z0-9._-].
func SanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeChars.ReplaceAllString(name, "")
}

// Save writes the uploaded file and returns its path relative to the root.
func (s *Storage) Save(fh *multipart.FileHeader, now time.Time) (string, error) {
	dir := filepath.Join(s.root, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	name := fmt.Sprintf("%d_%s", now.UnixMilli(), SanitizeName(fh.Filename))
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", dst, err)
	}

	rel, err := filepath.Rel(s.root, dst)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// List walks the upload tree and returns relative paths, newest first.
func (s *Storage) List() ([]string, error) {
	var files []string
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// Abs resolves a relative upload path, rejecting traversal outside the root.
func (s *Storage) Abs(rel string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	fullAbs, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if fullAbs != rootAbs && !strings.HasPrefix(fullAbs, rootAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path %q escapes upload root", rel)
	}
	return fullAbs, nil
}
