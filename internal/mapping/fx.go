package mapping

import (
	"github.com/campuslabs/feeflow/internal/mapping/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mapping",
	fx.Provide(service.NewService),
)
