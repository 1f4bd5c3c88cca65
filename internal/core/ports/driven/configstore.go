package driven

// ConfigStore provides persistent key-value configuration storage.
// Keys use dotted paths, e.g. "embedding.provider".
type ConfigStore interface {
	// Get retrieves a value by key. The second return indicates presence.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if absent.
	GetInt(key string) int

	// GetFloat retrieves a float value, or 0 if absent.
	GetFloat(key string) float64

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Path returns the location of the backing file.
	Path() string
}
