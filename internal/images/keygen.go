package images

import (
	"strings"
	"time"
)

// fallbackName is used when sanitization leaves nothing of the original filename.
const fallbackName = "upload"

// StorageKey derives the object key for an uploaded file: a UTC timestamp
// prefix followed by the sanitized original filename. The prefix makes keys
// lexically sort in upload order; two uploads of the same filename within the
// same second collide and the later write wins.
func StorageKey(filename string, now time.Time) string {
	return now.UTC().Format("20060102T150405") + "-" + sanitizeFilename(filename)
}

// sanitizeFilename reduces an arbitrary user-supplied filename to characters
// safe for object keys and URLs. Path separators and whitespace become
// underscores, everything outside [A-Za-z0-9._-] is dropped, and leading or
// trailing dots and underscores are trimmed. Never returns an empty string.
func sanitizeFilename(name string) string {
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	s := strings.Trim(b.String(), "._")
	if s == "" {
		return fallbackName
	}
	return s
}
