//go:build rp2040 && debug

package main

import "gobounce/core"

// initDebug routes transition logging to the USB serial console
func initDebug() {
	core.SetDebugWriter(func(s string) {
		println(s)
	})
}
