package util

import (
	"errors"
	"strings"
	"unicode"
)

// MaxFileNameRunes caps a download name before its extension.
const MaxFileNameRunes = 100

// ErrInvalidFileName is returned for names that are blank after cleaning
// or that try to traverse directories.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName turns a user-supplied download name into one that is
// safe in a Content-Disposition header and on common filesystems.
// Separators and reserved characters become underscores, control
// characters are dropped and the result is capped at MaxFileNameRunes.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == MaxFileNameRunes {
			break
		}
		switch {
		case unicode.IsControl(r):
			continue
		case strings.ContainsRune(`/\<>:"|?*`, r):
			r = '_'
		}
		b.WriteRune(r)
		n++
	}
	s := strings.Trim(b.String(), " .")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
