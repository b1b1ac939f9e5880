package observability

import (
	"github.com/mrossi-dev/gestionale/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(metrics.New),
)
