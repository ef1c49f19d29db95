package cover

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Scheme is prefixed to protocol-relative links
const Scheme = "https:"

// DefaultExt is used when an image URL has no path extension
const DefaultExt = ".png"

// Resolve turns an image href into an absolute URL. Protocol-relative links
// get the https scheme, links without a scheme are resolved against
// baseOrigin, and fully-qualified links are returned unchanged.
func Resolve(href, baseOrigin string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty image link")
	}

	if strings.HasPrefix(href, "//") {
		return Scheme + href, nil
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing image link %q: %w", href, err)
	}
	if ref.Scheme != "" {
		return href, nil
	}

	base, err := url.Parse(baseOrigin)
	if err != nil {
		return "", fmt.Errorf("parsing base origin %q: %w", baseOrigin, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("base origin %q is not absolute", baseOrigin)
	}

	return base.ResolveReference(ref).String(), nil
}

// Extension returns the path extension of rawURL, ignoring any query string or
// fragment, or def when the path has none.
func Extension(rawURL, def string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	if ext := path.Ext(p); ext != "" && ext != "." {
		return ext
	}
	return def
}
