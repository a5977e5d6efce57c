package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// mimeTypes maps the accepted resume extensions to their MIME types. Anything
// else is dropped by the type filter. Content is never inspected.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ResumeFile is a single selected resume. Name is the unique key within a
// collection and the id the analysis service correlates results back to.
type ResumeFile struct {
	Name      string
	Path      string
	SizeBytes int64
	MIMEType  string
}

// MIMETypeFor returns the MIME type for a resume file name and whether the
// type is accepted.
func MIMETypeFor(name string) (string, bool) {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	return mime, ok
}

// FromPath builds a ResumeFile from a path on disk. The file must exist; its
// type is recorded even when unsupported so the collector's filters can
// account for the drop.
func FromPath(path string) (*ResumeFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat resume %q: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("resume %q is a directory", path)
	}

	name := filepath.Base(path)
	mime, _ := MIMETypeFor(name)

	return &ResumeFile{
		Name:      name,
		Path:      path,
		SizeBytes: info.Size(),
		MIMEType:  mime,
	}, nil
}
