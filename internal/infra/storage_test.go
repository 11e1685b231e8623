package infra

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"informe stock.pdf":    "informe_stock.pdf",
		"../../etc/passwd":     "passwd",
		"planilla (final).xlsx": "planilla_final.xlsx",
		"ñandú.txt":            "and.txt",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeName(in), "input %q", in)
	}
}

// makeFileHeader builds a real multipart.FileHeader the way gin receives it.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("archivo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest("POST", "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["archivo"][0]
}

func TestStorageSaveLayout(t *testing.T) {
	s := NewStorage(t.TempDir())
	now := time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)

	rel, err := s.Save(makeFileHeader(t, "informe stock.pdf", []byte("contenido")), now)
	require.NoError(t, err)

	// uploads/<año>/<mes>/<timestamp>_<nombre-sanitizado>
	assert.Regexp(t, `^2025/03/\d+_informe_stock\.pdf$`, rel)

	abs, err := s.Abs(rel)
	require.NoError(t, err)
	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestStorageList(t *testing.T) {
	root := t.TempDir()
	s := NewStorage(root)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "2025", "03"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2025", "03", "1_a.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2025", "03", "2_b.pdf"), []byte("b"), 0o644))

	files, err := s.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	// Más nuevo primero.
	assert.Equal(t, "2025/03/2_b.pdf", files[0])
}

func TestStorageAbsRechazaTraversal(t *testing.T) {
	s := NewStorage(t.TempDir())
	_, err := s.Abs("../fuera.txt")
	require.Error(t, err)
}
