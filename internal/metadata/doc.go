// Package metadata extracts header blocks from source files and validates
// them against per-kind JSON schemas.
package metadata
