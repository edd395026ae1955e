package common

import (
	"os"
	"os/signal"
	"syscall"
)

// Interrupted relays SIGINT, SIGTERM and SIGQUIT. The channel holds two signals
// so a second ^C can force an exit while the first one is being handled.
func Interrupted() <-chan os.Signal {
	interrupt := make(chan os.Signal, 2)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	return interrupt
}
