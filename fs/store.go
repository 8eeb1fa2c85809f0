package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/leetmommy/leetmommy"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements leetmommy.DocumentStore at compile time.
var _ leetmommy.DocumentStore = (*FileStore)(nil)

// FileStore implements leetmommy.DocumentStore with atomic update semantics.
// Documents are saved to a temporary directory, then moved on Commit.
type FileStore struct {
	baseDir string
	name    string

	mu    sync.Mutex
	owner map[string]string // relative path -> URL saved there
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		owner:   make(map[string]string),
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the document as YAML under the temporary directory.
func (s *FileStore) Save(ctx context.Context, doc *leetmommy.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
		return fmt.Errorf("map %s to path: %w", doc.URL, err)
	}
	relPath = s.claim(relPath, doc.URL)
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc.URL, err)
	}
	return os.WriteFile(fullPath, data, 0644)
}

// claim reserves relPath for url. A path already holding another URL is
// disambiguated with a hash of the URL.
func (s *FileStore) claim(relPath, url string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.owner[relPath]; ok && owner != url {
		relPath = withHash(relPath, url)
	}
	s.owner[relPath] = url
	return relPath
}

// Commit replaces the final directory with the saved documents.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved documents.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// LoadDocument reads a document previously written by Save.
func LoadDocument(path string) (*leetmommy.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc leetmommy.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}
