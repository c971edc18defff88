// Package source classifies paths of a site source tree and loads the files
// they point at.
//
// A path such as "pages/blog/post.en-US.md" is parsed into a Descriptor that
// records the content kind (page), the directory below the kind root
// ("/blog"), the base name ("post"), an optional locale tag (".en-US") and the
// file format (markdown). Every substring is kept as a byte span into the
// single path string held by the descriptor.
//
// File pairs a Descriptor with the raw bytes read from storage and the
// optional metadata block returned by an Extractor. The package performs no
// logging and no retries; every failure is returned to the caller as a typed
// error.
package source
