// Package downloads persists binary attachments fetched from the server
// (certificates, the rules document, spreadsheet exports) to a local
// directory.
package downloads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mrlokans/libtool/internal/api"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// Saver writes attachments into a download directory.
type Saver struct {
	dir string
}

// NewSaver creates a saver rooted at dir, creating it if needed.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}
	return &Saver{dir: dir}, nil
}

// Dir returns the download directory path.
func (s *Saver) Dir() string {
	return s.dir
}

// Save writes the attachment body to disk under its (sanitized) filename and
// closes the body. The write goes through a temp file and an atomic rename
// so an interrupted download never leaves a truncated file behind.
func (s *Saver) Save(att *api.Attachment) (string, error) {
	defer att.Body.Close()

	target := filepath.Join(s.dir, SanitizeFilename(att.Filename))

	tmpFile, err := os.CreateTemp(s.dir, "download_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := io.Copy(tmpFile, att.Body); err != nil {
		return "", err
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, target); err != nil {
		return "", err
	}
	return target, nil
}

// SanitizeFilename strips characters that are invalid in filenames,
// normalizes whitespace and caps the length. The result is never empty.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	// Limit length (most filesystems support 255, but leave room for extension)
	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}

	if filename == "" {
		filename = "download"
	}
	return filename
}
