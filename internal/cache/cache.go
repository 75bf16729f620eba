package cache

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)
}

// Grouped caches track which keys belong to a group (for example a user)
// so a write can drop every derived entry at once.
type Grouped[T any] interface {
	Cache[T]
	SetInGroup(group, key string, data T)
	InvalidateGroup(group string) int
}
