package subject

import (
	"github.com/mrossi-dev/gestionale/internal/subject/domain"
	"github.com/mrossi-dev/gestionale/internal/subject/service"
	"github.com/mrossi-dev/gestionale/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("subject.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Subject] {
		return repository.ProvideStore[domain.Subject](db)
	}),
	fx.Provide(service.NewService),
)
