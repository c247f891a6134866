package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t ]+`)
	// Anything left that is not slug-safe
	nonSlugChars = regexp.MustCompile(`[^a-z0-9._-]`)
)

// SanitizeSlug normalizes a chapter slug into a filesystem-safe name for
// generated page and data files.
func SanitizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = whitespaceChars.ReplaceAllString(slug, "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")

	// Guard against path tricks like "../../etc"
	slug = strings.Trim(slug, ".-")

	if slug == "" {
		return "untitled"
	}

	if len(slug) > 200 {
		slug = strings.Trim(slug[:200], ".-")
	}

	return slug
}

// SanitizeFilename removes characters that are invalid in filenames and
// collapses whitespace, for titles used directly as file names.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}

	if filename == "" {
		return "Untitled"
	}

	return filename
}
