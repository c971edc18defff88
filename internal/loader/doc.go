// Package loader applies caller level policy on top of the source core: it
// classifies batches of paths, reads them through a storage backend with
// bounded concurrency, validates extracted metadata and tags every failure
// with a go-errors category and text code.
package loader
