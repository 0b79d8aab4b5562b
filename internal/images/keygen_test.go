package images

import (
	"sort"
	"strings"
	"testing"
	"time"
)

func TestStorageKeyTimestampAndSanitizedName(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got := StorageKey("bug report.png", at)
	want := "20240301T120000-bug_report.png"
	if got != want {
		t.Errorf("StorageKey = %q, want %q", got, want)
	}
}

func TestStorageKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2024, 3, 1, 15, 0, 0, 0, loc)

	got := StorageKey("a.png", at)
	if !strings.HasPrefix(got, "20240301T120000-") {
		t.Errorf("StorageKey = %q, want UTC timestamp prefix 20240301T120000-", got)
	}
}

func TestSanitizeFilenameNeverEmitsUnsafeCharacters(t *testing.T) {
	inputs := []string{
		"../../etc/passwd",
		`..\..\windows\system32`,
		"a/b/c.png",
		"evil\x00name\x1f.png",
		"line\nbreak.jpg",
		"tab\there.gif",
		"späce änd ümlauts.png",
	}

	for _, in := range inputs {
		out := sanitizeFilename(in)
		if strings.ContainsAny(out, "/\\") {
			t.Errorf("sanitizeFilename(%q) = %q: contains path separator", in, out)
		}
		for _, r := range out {
			if r < 0x20 || r == 0x7f {
				t.Errorf("sanitizeFilename(%q) = %q: contains control character %#x", in, out, r)
			}
		}
		if strings.HasPrefix(out, ".") {
			t.Errorf("sanitizeFilename(%q) = %q: leading dot", in, out)
		}
		if out == "" {
			t.Errorf("sanitizeFilename(%q) = empty string", in)
		}
	}
}

func TestSanitizeFilenameFallback(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n", "...", "___", "日本語"} {
		if got := sanitizeFilename(in); got != "upload" {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, "upload")
		}
	}
}

func TestSanitizeFilenameStripsLeadingDots(t *testing.T) {
	if got := sanitizeFilename(".env"); got != "env" {
		t.Errorf("sanitizeFilename(.env) = %q, want %q", got, "env")
	}
}

func TestStorageKeysSortChronologically(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var keys []string
	for _, d := range []time.Duration{0, time.Second, time.Minute, time.Hour, 24 * time.Hour} {
		keys = append(keys, StorageKey("same.png", base.Add(d)))
	}

	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys not in lexical order matching chronological order: %v", keys)
	}
}
