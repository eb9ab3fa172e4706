package properties

// Properties is a parsed key/value property set.
// Mappings returned by the Store are shared and must not be modified.
type Properties map[string]string

// Get returns the value for key and whether it was present
func (p Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}

	v, ok := p[key]
	return v, ok
}

// Entry is the cached state of one property file
type Entry struct {
	// Path is the identity key of the entry
	Path string

	// Properties holds the parsed file, nil when the file did not exist
	Properties Properties

	// Stamp is the file modification time in UnixNano at load time
	Stamp int64

	// Exists is false when the file was missing at the last check
	Exists bool
}

// fresh reports whether the entry can be reused for a file in the given state
func (e *Entry) fresh(exists bool, stamp int64) bool {
	if !e.Exists {
		// An absent record has no stamp, so any existing file counts as changed
		return !exists
	}

	return exists && e.Stamp == stamp
}
