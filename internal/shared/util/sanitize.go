package util

import (
	"errors"
	"path"
	"strings"
)

const maxFileNameLen = 255

var ErrInvalidFileName = errors.New("invalid file name")

// CleanFileName reduces an uploaded file name to its last path element.
func CleanFileName(name string) (string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	s = path.Base(s)
	if s == "" || s == "." || s == ".." || s == "/" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		s = s[len(s)-maxFileNameLen:]
	}
	return s, nil
}
