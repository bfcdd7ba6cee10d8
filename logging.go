package binframe

import (
	"os"

	"github.com/rs/zerolog"
)

// logger receives parser diagnostics when VerboseErrors is set. Defaults to
// plain stderr output; replace it with SetLogger to route diagnostics into an
// application's logging setup, or silence them with zerolog.Nop().
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// SetLogger replaces the package diagnostics logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}
