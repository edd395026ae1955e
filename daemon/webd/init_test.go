package webd

import (
	"log/slog"

	"github.com/rotblauer/catpace/common"
	"github.com/rotblauer/catpace/params"
)

func init() {
	common.SlogResetLevel(slog.LevelWarn + 1)
}

// newTestWebDaemon creates a new WebDaemon for testing purposes.
// It has no elevation oracle.
func newTestWebDaemon() *WebDaemon {
	return NewWebDaemon(params.DefaultTestWebDaemonConfig(), nil)
}
