package cascade

import (
	"github.com/campuslabs/feeflow/internal/cascade/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cascade.service",
	fx.Provide(service.NewService),
)
