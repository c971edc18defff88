// Package storage provides the byte readers the loader pulls source files
// from: a go-billy filesystem (disk or memory), any io/fs.FS, and a MinIO/S3
// bucket. Every backend also lists the files under a root so the loader can
// scan a tree.
package storage
