package tax

import "go.uber.org/fx"

var Module = fx.Module("tax.catalog",
	fx.Provide(NewCatalog),
)
