package pages

import "go.uber.org/fx"

var Module = fx.Module("pages",
	fx.Provide(
		NewMainPage,
		NewCatalogPage,
		NewCoursePage,
	),
)
