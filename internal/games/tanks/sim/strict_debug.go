//go:build arenadebug

package sim

const strictGeometry = true
