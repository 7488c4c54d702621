package inventory

import (
	"github.com/smallbiznis/pos/internal/inventory/alert"
	"github.com/smallbiznis/pos/internal/inventory/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory",
	fx.Provide(repository.Provide),
	fx.Provide(alert.NewNotifier),
)
