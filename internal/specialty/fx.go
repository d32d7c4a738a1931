package specialty

import (
	"github.com/smallbiznis/dentalpay/internal/specialty/repository"
	"github.com/smallbiznis/dentalpay/internal/specialty/service"
	"go.uber.org/fx"
)

var Module = fx.Module("specialty.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
