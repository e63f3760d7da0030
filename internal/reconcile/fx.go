package reconcile

import (
	"github.com/campuslabs/feeflow/internal/reconcile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile.service",
	fx.Provide(service.NewService),
)
