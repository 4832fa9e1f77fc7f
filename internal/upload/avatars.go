// Package upload stores user-submitted avatar images on local disk and hands
// back the URL path they are served under.
package upload

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const urlBase = "/uploads"

type Disk struct {
	dir string
}

// NewDisk returns a store writing into dir. The directory is created on
// first use.
func NewDisk(dir string) *Disk {
	return &Disk{dir: dir}
}

// Store writes the avatar bytes under a random name, keeping only the
// original extension, and returns the public URL path.
func (d *Disk) Store(data []byte, filename string) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(filename)
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return urlBase + "/" + name, nil
}
