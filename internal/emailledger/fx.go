package emailledger

import (
	"github.com/smallbiznis/dentalpay/internal/emailledger/repository"
	"github.com/smallbiznis/dentalpay/internal/emailledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("emailledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
