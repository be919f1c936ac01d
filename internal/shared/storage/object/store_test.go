package object

import (
	"errors"
	"strings"
	"testing"
)

func TestUploadKey(t *testing.T) {
	key, err := UploadKey("resumes", "user-1", "../My CV.pdf")
	if err != nil {
		t.Fatalf("UploadKey: %v", err)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != "resumes" {
		t.Fatalf("unexpected key layout %q", key)
	}
	if strings.Contains(key, "user-1") {
		t.Fatalf("key leaks raw user id: %q", key)
	}
	if !strings.HasSuffix(parts[2], "_My CV.pdf") {
		t.Fatalf("expected file name suffix, got %q", parts[2])
	}

	other, err := UploadKey("resumes", "user-1", "../My CV.pdf")
	if err != nil {
		t.Fatalf("UploadKey: %v", err)
	}
	if other == key {
		t.Fatalf("expected unique keys per upload")
	}
}

func TestCleanKey(t *testing.T) {
	for _, bad := range []string{"", "..", "../x", "/etc/passwd", `..\x`} {
		if _, err := CleanKey(bad); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("CleanKey(%q): expected ErrInvalidKey, got %v", bad, err)
		}
	}
	got, err := CleanKey("resumes/./abc/file.pdf")
	if err != nil || got != "resumes/abc/file.pdf" {
		t.Fatalf("CleanKey = %q, %v", got, err)
	}
}

func TestJoinPrefix(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"", "resumes/abc/cv.pdf", "resumes/abc/cv.pdf"},
		{"career", "resumes/abc/cv.pdf", "career/resumes/abc/cv.pdf"},
		{"/career/", "/resumes/cv.pdf", "career/resumes/cv.pdf"},
		{"career", "", "career"},
	}
	for _, tt := range tests {
		if got := JoinPrefix(tt.prefix, tt.key); got != tt.want {
			t.Fatalf("JoinPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}
