package stitch

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Format binds a reader and writer to the file extensions they handle.
// Either side may be nil.
type Format struct {
	Name       string
	Extensions []string
	Reader     Reader
	Writer     Writer
}

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	formats    = make(map[string]Format) // by name
	extensions = make(map[string]string) // extension -> name
)

// RegisterFormat makes a format available to ReadFile, WriteFile and
// LookupFormat. It is typically called from init() in format packages,
// following the database/sql driver pattern:
//
//	func init() {
//	    stitch.RegisterFormat(stitch.Format{
//	        Name:       "dst",
//	        Extensions: []string{".dst"},
//	        Reader:     Format{},
//	        Writer:     Format{},
//	    })
//	}
//
// RegisterFormat panics if the name is empty, if the format has neither a
// reader nor a writer, or if the name or one of the extensions is already
// registered.
func RegisterFormat(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f.Name == "" {
		panic("stitch: RegisterFormat name is empty")
	}
	if f.Reader == nil && f.Writer == nil {
		panic("stitch: RegisterFormat " + f.Name + " has neither reader nor writer")
	}
	if _, dup := formats[f.Name]; dup {
		panic("stitch: RegisterFormat called twice for " + f.Name)
	}
	for _, ext := range f.Extensions {
		if owner, dup := extensions[normalizeExt(ext)]; dup {
			panic("stitch: RegisterFormat extension " + ext + " already registered by " + owner)
		}
	}
	formats[f.Name] = f
	for _, ext := range f.Extensions {
		extensions[normalizeExt(ext)] = f.Name
	}
}

// UnregisterFormat removes a format from the registry.
// This is primarily useful for testing to clean up between tests.
// If the format is not registered, this is a no-op.
func UnregisterFormat(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	f, ok := formats[name]
	if !ok {
		return
	}
	for _, ext := range f.Extensions {
		delete(extensions, normalizeExt(ext))
	}
	delete(formats, name)
}

// LookupFormat returns the format registered for a file extension. The
// leading dot and letter case are ignored.
func LookupFormat(ext string) (Format, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	name, ok := extensions[normalizeExt(ext)]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q (forgotten import?)", ErrUnknownFormat, ext)
	}
	return formats[name], nil
}

// Formats returns a sorted list of registered format names.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
