package imagecache

import "image/color"

// Manager owns one ImageCache per tint in use. Each chrome instance owns its
// own Manager; it is not safe for concurrent use.
type Manager struct {
	caches map[color.NRGBA]*ImageCache
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{caches: make(map[color.NRGBA]*ImageCache)}
}

// For returns the cache for c, creating it on first use.
func (m *Manager) For(c color.NRGBA) *ImageCache {
	if ic, ok := m.caches[c]; ok {
		return ic
	}
	ic := New(c)
	m.caches[c] = ic
	return ic
}

// Len returns the number of live caches.
func (m *Manager) Len() int {
	return len(m.caches)
}

// Close releases every cache.
func (m *Manager) Close() {
	for c, ic := range m.caches {
		ic.Close()
		delete(m.caches, c)
	}
}
