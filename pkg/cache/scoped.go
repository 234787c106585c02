package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one redis database without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "flatbox:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// PanelsKey generates a prefixed key for panel set caching.
func (k *ScopedKeyer) PanelsKey(inputHash string) string {
	return k.prefix + k.inner.PanelsKey(inputHash)
}
