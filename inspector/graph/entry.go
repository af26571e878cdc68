package graph

import "fmt"

// Entry is a module known to the build: its resolved location, the request
// that produced it and its source after upstream transforms.
type Entry struct {
	Path        string
	Request     string
	Source      []byte
	Map         []byte
	Fingerprint uint64
}

// NewEntry creates an entry for source located at path.
func NewEntry(path, request string, source, sourceMap []byte) (*Entry, error) {
	fingerprint, err := Fingerprint(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}
	return &Entry{
		Path:        Key(path),
		Request:     request,
		Source:      source,
		Map:         sourceMap,
		Fingerprint: fingerprint,
	}, nil
}
