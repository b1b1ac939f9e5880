package document

import (
	"github.com/mrossi-dev/gestionale/internal/document/repository"
	"github.com/mrossi-dev/gestionale/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
