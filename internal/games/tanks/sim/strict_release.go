//go:build !arenadebug

package sim

// strictGeometry turns degenerate geometry into a panic.
// Build with -tags arenadebug to enable it.
const strictGeometry = false
