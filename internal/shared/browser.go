package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand builds the platform command that opens link in the default browser.
func browserCommand(link string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.Command("open", link), nil
	case "linux":
		return exec.Command("xdg-open", link), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link), nil
	default:
		return nil, fmt.Errorf("%w: unsupported platform %s", ErrServiceUnavailable, rt)
	}
}

// OpenBrowser opens the default system browser at link.
//
// Only absolute http and https URLs are accepted, since playlist links are read from the store.
func OpenBrowser(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: not a web URL: %q", ErrInvalidArgument, link)
	}

	cmd, err := browserCommand(u.String())
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
