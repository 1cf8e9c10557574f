package observability

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/lol-match-history/internal/config"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
)

const pprofStopTimeout = 5 * time.Second

// Shutdown flushes and stops whatever Setup started.
type Shutdown func(ctx context.Context) error

// Setup starts tracing, continuous profiling and the pprof listener as
// configured. On error everything already started is stopped again.
func Setup(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var stops []Shutdown
	shutdown := func(ctx context.Context) error {
		var combined error
		for i := len(stops) - 1; i >= 0; i-- {
			combined = errors.CombineErrors(combined, stops[i](ctx))
		}
		return combined
	}

	stopTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init uptrace")
	}
	stops = append(stops, stopTracing)

	stopProfiler, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, errors.Wrap(err, "init pyroscope")
	}
	stops = append(stops, func(context.Context) error { return stopProfiler() })

	srv, err := StartPprofServer(cfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, errors.Wrap(err, "start pprof")
	}
	stops = append(stops, func(context.Context) error {
		return StopPprofServer(srv, logger, pprofStopTimeout)
	})

	return shutdown, nil
}
