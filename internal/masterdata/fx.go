package masterdata

import (
	"github.com/campuslabs/feeflow/internal/masterdata/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("masterdata",
	fx.Provide(repository.NewRepository),
)
