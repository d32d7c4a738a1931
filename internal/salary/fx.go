package salary

import (
	"github.com/smallbiznis/dentalpay/internal/salary/repository"
	"github.com/smallbiznis/dentalpay/internal/salary/service"
	"go.uber.org/fx"
)

var Module = fx.Module("salary.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
