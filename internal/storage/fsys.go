package storage

import (
	"context"
	"io/fs"
)

// FS reads from any io/fs.FS such as os.DirFS or an embedded tree.
type FS struct {
	fsys fs.FS
}

var _ Backend = (*FS)(nil)

// NewFS wraps fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// ReadFile returns the full contents of name.
func (f *FS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := contextDone(ctx); err != nil {
		return nil, err
	}
	return fs.ReadFile(f.fsys, fsName(name))
}

// List walks root and returns every regular file below it.
func (f *FS) List(ctx context.Context, root string) ([]string, error) {
	var names []string
	err := fs.WalkDir(f.fsys, fsName(root), func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := contextDone(ctx); ctxErr != nil {
			return ctxErr
		}
		if d.Type().IsRegular() {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedUnique(names), nil
}

func fsName(name string) string {
	name = cleanName(name)
	if name == "" {
		return "."
	}
	return name
}
