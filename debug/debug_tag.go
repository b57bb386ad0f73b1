//go:build debug

package debug

// Debug reports whether the debug build tag is set.
const Debug = true
