// pkg/batch/manifest.go
package batch

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
)

// DefaultManifestName is the manifest file created under the destination root
const DefaultManifestName = ".arcbatch-manifest.json"

const manifestVersion = 1

// ManifestEntry remembers one successful extraction
type ManifestEntry struct {
	Digest      string    `json:"digest"`
	Destination string    `json:"destination"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Manifest tracks which archives were already extracted, keyed by their
// slash-separated path relative to the source root
type Manifest struct {
	Version int                      `json:"version"`
	Entries map[string]ManifestEntry `json:"entries"`

	path string
}

// LoadManifest reads the manifest at path; a missing file yields an empty manifest
func LoadManifest(path string) (*Manifest, error) {
	m := &Manifest{
		Version: manifestVersion,
		Entries: make(map[string]ManifestEntry),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}

	if err := json.Unmarshal(data, m); err != nil {
		return &Manifest{Version: manifestVersion, Entries: make(map[string]ManifestEntry), path: path},
			fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]ManifestEntry)
	}
	return m, nil
}

// Unchanged reports whether relPath was extracted from identical bytes into
// dest, and dest still exists
func (m *Manifest) Unchanged(relPath, digest, dest string) bool {
	entry, ok := m.Entries[filepath.ToSlash(relPath)]
	if !ok || entry.Digest != digest || entry.Destination != dest {
		return false
	}
	info, err := os.Stat(dest)
	return err == nil && info.IsDir()
}

// Record stores a successful extraction
func (m *Manifest) Record(relPath, digest, dest string) {
	m.Entries[filepath.ToSlash(relPath)] = ManifestEntry{
		Digest:      digest,
		Destination: dest,
		ExtractedAt: time.Now().UTC(),
	}
}

// Forget drops relPath so the next run retries it
func (m *Manifest) Forget(relPath string) {
	delete(m.Entries, filepath.ToSlash(relPath))
}

// Save writes the manifest atomically (temp file + rename)
func (m *Manifest) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(m.path), ".arcbatch-manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close manifest: %w", err)
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename manifest: %w", err)
	}
	return nil
}

// FileDigest returns the hex BLAKE3 digest of the file at path
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
