// Package link opens URLs in the user's browser.
package link

import (
	"errors"
	"log"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for anything other than an absolute http(s) URL.
var ErrUnsupportedURL = errors.New("unsupported url")

// Command returns the opener invocation for goos.
func Command(goos, target string) (name string, args []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// Validate checks that raw is an absolute http or https URL.
func Validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrUnsupportedURL
	}
	return nil
}

// Open starts the platform opener for raw and does not wait for it.
// Failures are logged.
func Open(raw string) {
	if err := Validate(raw); err != nil {
		log.Printf("not opening %q: %v", raw, err)
		return
	}

	name, args := Command(runtime.GOOS, raw)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		log.Printf("opening %s: %v", raw, err)
		return
	}
	go func() {
		// Reap the child so it does not linger as a zombie.
		_ = cmd.Wait()
	}()
}
