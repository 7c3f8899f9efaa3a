package progress

import (
	"os"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// ProvideProgressSink picks the sink for the current run: nothing for --json,
// plain lines when non-interactive, a spinner otherwise. Progress goes to stderr.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON {
		return NewNopSink()
	}
	return NewSpinnerSink(os.Stderr, !cfg.NonInteractive)
}
