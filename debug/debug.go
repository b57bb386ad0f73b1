// Package debug carries the debug build tag flag and debug-only helpers.
package debug

// Assert panics if condition is false. Callers guard it with Debug so the
// check compiles away in release builds.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) > 0 {
			panic(message[0])
		}
		panic("assertion failed")
	}
}
