// Package watch reports changes to files under the includes, layouts and
// pages roots of a site source tree on local disk.
//
// Each filesystem event is classified with the path grammar before it reaches
// the caller, so consumers receive a descriptor (or the classification error)
// together with the operation. Paths outside the three roots are ignored.
package watch
