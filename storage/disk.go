package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Disk stores images as local files and references them by slash path.
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Save(_ context.Context, r io.Reader, filename string) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	dst := filepath.Join(d.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", err
	}
	return filepath.ToSlash(dst), nil
}

func (d *Disk) Remove(_ context.Context, ref string) error {
	return os.Remove(filepath.FromSlash(ref))
}
