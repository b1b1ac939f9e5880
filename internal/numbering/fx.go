package numbering

import (
	"github.com/mrossi-dev/gestionale/internal/numbering/repository"
	"github.com/mrossi-dev/gestionale/internal/numbering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("numbering.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
