package utils

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
)

// ValidateLocator checks that s is an absolute http(s) URL.
func ValidateLocator(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("empty url")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host: %s", s)
	}
	return nil
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// OpenURL hands target to the system browser without waiting for it.
func OpenURL(target string) error {
	if err := ValidateLocator(target); err != nil {
		return err
	}
	name, args := openCommand(runtime.GOOS, target)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}

func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
