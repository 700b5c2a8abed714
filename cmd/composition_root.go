package cmd

import (
	"log/slog"

	"sibcargo/internal/adapters/out/postgres"
	"sibcargo/internal/core/application/intake"
	"sibcargo/internal/core/application/usecases/commands"
	"sibcargo/internal/core/application/usecases/queries"
	"sibcargo/internal/core/domain/services"
	"sibcargo/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAddressResolver(geocoder ports.Geocoder) (*services.AddressResolver, error) {
	return services.NewAddressResolver(geocoder, c.config.DefaultCity, c.logger)
}

func (c *CompositionRoot) CreateTariff() (services.Tariff, error) {
	return services.NewTariff(c.config.BasePriceRub, c.config.PricePerKmRub, c.config.PricePerKgRub)
}

func (c *CompositionRoot) CreateIntakeMachine(geocoder ports.Geocoder) (*intake.Machine, error) {
	resolver, err := c.CreateAddressResolver(geocoder)
	if err != nil {
		return nil, err
	}

	tariff, err := c.CreateTariff()
	if err != nil {
		return nil, err
	}

	confirmer := c.CreateConfirmOrderCommandHandler()
	return intake.NewMachine(resolver, tariff, &confirmer, nil, c.logger)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
