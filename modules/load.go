package modules

import (
	"github.com/iota-uz/migscope/modules/migration"
	"github.com/iota-uz/migscope/pkg/application"
)

var BuiltInModules = []application.Module{
	migration.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
