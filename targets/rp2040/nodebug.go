//go:build rp2040 && !debug

package main

// initDebug is a no-op on release builds; the ring still records
// transitions for the fault dump, it just has nowhere to print
func initDebug() {
}
