package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-sitefile/internal/runtimeconfig"
	"github.com/goliatone/go-sitefile/internal/source"
)

// Lister enumerates the files below root as slash separated paths relative
// to the backend root.
type Lister interface {
	List(ctx context.Context, root string) ([]string, error)
}

// Backend is a readable, listable store.
type Backend interface {
	source.Reader
	Lister
}

// New builds the backend selected by cfg.
func New(cfg runtimeconfig.Config) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Provider)) {
	case "", "os":
		return NewDisk(cfg.Root), nil
	case "memory":
		return NewMemory(), nil
	case "s3":
		return NewS3(cfg.Storage.S3)
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
}

// cleanName normalises a caller supplied name into a slash separated,
// root relative path.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Clean("/" + name)
	return strings.TrimPrefix(name, "/")
}

func sortedUnique(names []string) []string {
	sort.Strings(names)
	out := names[:0]
	for i, name := range names {
		if i > 0 && names[i-1] == name {
			continue
		}
		out = append(out, name)
	}
	return out
}

func contextDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
