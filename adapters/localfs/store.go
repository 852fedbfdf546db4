package localfs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"framebias/internal/errors"
)

// LocalArtifactStore implements ports.ArtifactStorePort on the local filesystem
type LocalArtifactStore struct {
	basePath string
}

// NewLocalArtifactStore creates a store rooted at basePath; "" means the working directory
func NewLocalArtifactStore(basePath string) *LocalArtifactStore {
	return &LocalArtifactStore{basePath: basePath}
}

// WriteJSON writes v as indented JSON without HTML escaping and without a trailing newline
func (s *LocalArtifactStore) WriteJSON(ctx context.Context, name string, v interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := EncodeJSON(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", name)
	}
	if err := s.write(name, content); err != nil {
		return nil, err
	}
	return content, nil
}

// ReadJSON decodes the named file into v
func (s *LocalArtifactStore) ReadJSON(ctx context.Context, name string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.keyToPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("artifact " + path)
		}
		return errors.IOError("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(errors.InvalidInput(err.Error()), "malformed JSON in %s", path)
	}
	return nil
}

// WriteText writes text verbatim
func (s *LocalArtifactStore) WriteText(ctx context.Context, name string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(name, []byte(text))
}

// write replaces the file through a temp file in the same directory so a
// crash never leaves a half-written artifact behind
func (s *LocalArtifactStore) write(name string, content []byte) error {
	path := s.keyToPath(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOError("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.IOError("create temp file in", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.IOError("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.IOError("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.IOError("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.IOError("rename to", path, err)
	}
	return nil
}

func (s *LocalArtifactStore) keyToPath(name string) string {
	if filepath.IsAbs(name) || s.basePath == "" {
		return filepath.FromSlash(name)
	}
	return filepath.Join(s.basePath, filepath.FromSlash(name))
}

// EncodeJSON renders v the way artifacts are stored on disk
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
