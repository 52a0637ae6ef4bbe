// Package blob stores source and derived PDF bytes on the local filesystem.
package blob

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NoMatterSegment substitutes for the matter segment of a storage key when
// a document is not attached to a matter.
const NoMatterSegment = "no-matter"

// LocalStore keeps blobs under a single root directory. Storage keys are
// slash-separated relative paths.
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Root returns the store's base directory.
func (s *LocalStore) Root() string {
	return s.root
}

// Path resolves a storage key to an absolute file path.
func (s *LocalStore) Path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Exists reports whether the key resolves to a regular file.
func (s *LocalStore) Exists(key string) bool {
	info, err := os.Stat(s.Path(key))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the bytes stored at key.
func (s *LocalStore) Read(key string) ([]byte, error) {
	return os.ReadFile(s.Path(key))
}

// Write stores data at key, creating parent directories as needed, and
// returns the hex sha256 of the bytes written.
func (s *LocalStore) Write(key string, data []byte) (string, error) {
	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// VersionKey builds the storage key for a derived version:
// uploads/pdf-pro/{matterId|no-matter}/{documentId}/v{n}-{operation}[-{variant}].pdf
func VersionKey(matterID, documentID string, versionNumber int, operation, variant string) string {
	matter := matterID
	if matter == "" {
		matter = NoMatterSegment
	}
	name := fmt.Sprintf("v%d-%s", versionNumber, operation)
	if variant != "" {
		name += "-" + sanitizeSegment(variant)
	}
	return fmt.Sprintf("uploads/pdf-pro/%s/%s/%s.pdf", matter, documentID, name)
}

// sanitizeSegment lowercases a variant and collapses anything outside
// [a-z0-9] to single dashes so it is safe in a filename.
func sanitizeSegment(v string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(v) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
