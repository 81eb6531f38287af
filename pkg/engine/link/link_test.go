package link

import (
	"errors"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs int
	}{
		{"linux", "xdg-open", 1},
		{"freebsd", "xdg-open", 1},
		{"darwin", "open", 1},
		{"windows", "rundll32", 2},
	}

	for _, tt := range tests {
		name, args := Command(tt.goos, "https://example.com")
		if name != tt.wantName || len(args) != tt.wantArgs {
			t.Errorf("Command(%q) = %s %v, want %s with %d args", tt.goos, name, args, tt.wantName, tt.wantArgs)
		}
		if args[len(args)-1] != "https://example.com" {
			t.Errorf("Command(%q) does not end with the URL: %v", tt.goos, args)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"https://example.com/path", true},
		{"http://localhost:8080", true},
		{"file:///etc/passwd", false},
		{"javascript:alert(1)", false},
		{"example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		err := Validate(tt.raw)
		if tt.ok && err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tt.raw, err)
		}
		if !tt.ok && !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("Validate(%q) = %v, want ErrUnsupportedURL", tt.raw, err)
		}
	}
}
