package intake

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestAddFiltersUnsupportedTypes(t *testing.T) {
	c := NewCollector(zap.NewNop())

	added := c.Add(
		&ResumeFile{Name: "resumeA.pdf", SizeBytes: 10 * 1024},
		&ResumeFile{Name: "notes.txt"},
		&ResumeFile{Name: "resumeB.docx"},
		&ResumeFile{Name: "photo.png"},
	)

	if len(added) != 2 {
		t.Fatalf("expected 2 added, got %d (%v)", len(added), added)
	}

	names := c.Names()
	if names[0] != "resumeA.pdf" || names[1] != "resumeB.docx" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestAddDeduplicatesByName(t *testing.T) {
	c := NewCollector(zap.NewNop())

	c.Add(&ResumeFile{Name: "resumeA.pdf", SizeBytes: 10 * 1024})
	added := c.Add(&ResumeFile{Name: "resumeA.pdf", SizeBytes: 12 * 1024})

	if len(added) != 0 {
		t.Fatalf("expected duplicate to be dropped, got %v", added)
	}

	if c.Len() != 1 {
		t.Fatalf("expected collection length 1, got %d", c.Len())
	}

	// First arrival wins.
	if c.Files()[0].SizeBytes != 10*1024 {
		t.Fatalf("expected original entry to be kept, got %d bytes", c.Files()[0].SizeBytes)
	}
}

func TestAddDeduplicatesWithinBatch(t *testing.T) {
	c := NewCollector(zap.NewNop())

	added := c.Add(
		&ResumeFile{Name: "resumeA.pdf"},
		&ResumeFile{Name: "resumeA.pdf"},
	)

	if len(added) != 1 {
		t.Fatalf("expected 1 added, got %d", len(added))
	}
}

func TestRemove(t *testing.T) {
	c := NewCollector(zap.NewNop())
	c.Add(&ResumeFile{Name: "resumeA.pdf"}, &ResumeFile{Name: "resumeB.docx"})

	if !c.Remove("resumeA.pdf") {
		t.Fatalf("expected removal to succeed")
	}

	if c.Remove("missing.pdf") {
		t.Fatalf("expected removal of absent entry to be a no-op")
	}

	if c.Len() != 1 || c.Names()[0] != "resumeB.docx" {
		t.Fatalf("unexpected collection after removal: %v", c.Names())
	}

	// A removed name can be added again.
	if added := c.Add(&ResumeFile{Name: "resumeA.pdf"}); len(added) != 1 {
		t.Fatalf("expected re-add after removal, got %v", added)
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "ignored.txt", "c.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	c := NewCollector(zap.NewNop())
	if err := c.CollectDir(dir, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := c.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 collected files, got %v", names)
	}
	if names[0] != "a.pdf" || names[1] != "b.pdf" || names[2] != "c.docx" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestCollectDirWithPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"senior_go.pdf", "junior_go.pdf", "senior_java.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	c := NewCollector(zap.NewNop())
	if err := c.CollectDir(dir, []string{"senior_*"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := c.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 collected files, got %v", names)
	}
	if names[0] != "senior_go.pdf" || names[1] != "senior_java.docx" {
		t.Fatalf("unexpected selection: %v", names)
	}
}

func TestCollectDirInvalidPattern(t *testing.T) {
	c := NewCollector(zap.NewNop())
	if err := c.CollectDir(t.TempDir(), []string{"[unclosed"}); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resumeA.pdf")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	file, err := FromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.Name != "resumeA.pdf" {
		t.Fatalf("unexpected name: %q", file.Name)
	}
	if file.SizeBytes != 10 {
		t.Fatalf("unexpected size: %d", file.SizeBytes)
	}
	if file.MIMEType != "application/pdf" {
		t.Fatalf("unexpected mime type: %q", file.MIMEType)
	}

	if _, err := FromPath(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	if _, err := FromPath(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
}
