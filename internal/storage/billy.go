package storage

import (
	"context"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Billy reads from a go-billy filesystem.
type Billy struct {
	bfs billy.Filesystem
}

var _ Backend = (*Billy)(nil)

// NewDisk returns a backend rooted at dir on the local disk.
func NewDisk(dir string) *Billy {
	return &Billy{bfs: osfs.New(dir)}
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Billy {
	return &Billy{bfs: memfs.New()}
}

// NewBilly wraps an existing billy filesystem.
func NewBilly(bfs billy.Filesystem) *Billy {
	return &Billy{bfs: bfs}
}

// Unwrap returns the underlying billy filesystem.
func (b *Billy) Unwrap() billy.Filesystem {
	return b.bfs
}

// WriteFile stores data at name, creating parent directories. It is used to
// seed in-memory trees.
func (b *Billy) WriteFile(name string, data []byte) error {
	name = cleanName(name)
	if dir := path.Dir(name); dir != "." {
		if err := b.bfs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(b.bfs, name, data, 0o644)
}

// ReadFile returns the full contents of name.
func (b *Billy) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := contextDone(ctx); err != nil {
		return nil, err
	}
	return util.ReadFile(b.bfs, cleanName(name))
}

// List walks root and returns every regular file below it.
func (b *Billy) List(ctx context.Context, root string) ([]string, error) {
	root = "/" + cleanName(root)
	var names []string
	err := util.Walk(b.bfs, root, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := contextDone(ctx); ctxErr != nil {
			return ctxErr
		}
		if info.Mode().IsRegular() {
			names = append(names, cleanName(name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedUnique(names), nil
}
