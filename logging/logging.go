// Package logging configures the root log15 handler shared by every package.
package logging

import (
	"io"
	"os"

	"github.com/inconshreveable/log15/v3"
)

// Setup sends logfmt records to stderr. Debug records are dropped unless
// debug is set. Stdout stays free for the MCP stdio transport.
func Setup(debug bool) {
	SetupWriter(os.Stderr, debug)
}

// SetupWriter is Setup with a custom destination.
func SetupWriter(w io.Writer, debug bool) {
	lvl := log15.LvlInfo
	if debug {
		lvl = log15.LvlDebug
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.LogfmtFormat())))
}

// Discard silences all logging.
func Discard() {
	log15.Root().SetHandler(log15.DiscardHandler())
}
