package graph

import (
	"path"
	"strings"

	"github.com/viant/afs/url"
)

const fileScheme = "file://"

// Key normalizes a location: local file URLs, with or without a host, become
// plain cleaned paths; other URLs keep their scheme and host.
func Key(location string) string {
	if strings.HasPrefix(location, fileScheme) {
		location = url.Path(location)
	}
	base, p := split(location)
	if p == "" {
		return base
	}
	return base + path.Clean(p)
}

// Dir returns the directory of location.
func Dir(location string) string {
	base, p := split(Key(location))
	return base + path.Dir(p)
}

// Join resolves request relative to the directory dir.
func Join(dir string, request string) string {
	if IsAbsolute(request) {
		return Key(request)
	}
	base, p := split(Key(dir))
	return base + path.Join(p, request)
}

// IsRelative reports whether request is a "./" or "../" request.
func IsRelative(request string) bool {
	return request == "." || request == ".." || strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../")
}

// IsAbsolute reports whether request is an absolute path or URL.
func IsAbsolute(request string) bool {
	return strings.HasPrefix(request, "/") || strings.Contains(request, "://")
}

// split separates "scheme://host" from the path of a URL. Plain paths have
// an empty base.
func split(location string) (string, string) {
	index := strings.Index(location, "://")
	if index == -1 {
		return "", location
	}
	rest := location[index+3:]
	slash := strings.Index(rest, "/")
	if slash == -1 {
		return location, "/"
	}
	return location[:index+3+slash], rest[slash:]
}
