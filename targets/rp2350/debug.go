//go:build rp2350 && debug

package main

import (
	"machine"

	"gobounce/core"
)

// initDebug routes transition logging to UART1 on GPIO36 (TX) and
// GPIO37 (RX), 115200 baud. The USB port stays free for the controller.
func initDebug() {
	uart := machine.UART1
	err := uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO36,
		RX:       machine.GPIO37,
	})
	if err != nil {
		return
	}
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write([]byte("\r\n"))
	})
}
