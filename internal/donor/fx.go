package donor

import (
	"github.com/solidaria/backoffice/internal/donor/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("donor",
	fx.Provide(repository.New),
)
