package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestFileUUIDIsStableAcrossSeparators(t *testing.T) {
	a := FileUUID("pages/blog/post.md")
	b := FileUUID(`pages\blog\post.md`)
	if a == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if a != b {
		t.Fatalf("expected separator independent ids, got %s and %s", a, b)
	}
	if a == FileUUID("pages/blog/other.md") {
		t.Fatal("expected distinct paths to produce distinct ids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatal("expected nil uuid for empty key")
	}
}

func TestRunUUIDIsRandom(t *testing.T) {
	if RunUUID() == RunUUID() {
		t.Fatal("expected distinct run ids")
	}
}
