package cmd

import (
	"fmt"
	"log/slog"

	"settlement/internal/adapters/in/http"
	"settlement/internal/adapters/out/postgres"
	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/core/domain/services"
	"settlement/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	suspensions ports.DriverSuspensions
	logger      *slog.Logger

	calculator *pricing.Calculator
	settlement services.Settlement
	feePolicy  withdrawal.FeePolicy
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	suspensions ports.DriverSuspensions,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	pricingConfig, err := cfg.PricingConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	calculator, err := pricing.NewCalculator(pricingConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	commission, err := cfg.Commission()
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE: %w", err)
	}
	feePolicy, err := cfg.FeePolicy()
	if err != nil {
		return nil, fmt.Errorf("invalid WITHDRAWAL_FEE_RATE: %w", err)
	}

	return &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger.With("component", "unit_of_work")),
		suspensions: suspensions,
		logger:      logger,
		calculator:  calculator,
		settlement:  services.NewSettlement(commission),
		feePolicy:   feePolicy,
	}, nil
}

func (c *CompositionRoot) Calculator() *pricing.Calculator {
	return c.calculator
}

// Handlers builds every command and query handler the HTTP server dispatches to.
func (c *CompositionRoot) Handlers() http.Handlers {
	return http.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		AddOrderItem:          c.CreateAddOrderItemCommandHandler(),
		RemoveOrderItem:       c.CreateRemoveOrderItemCommandHandler(),
		ChangeItemInsurance:   c.CreateChangeItemInsuranceCommandHandler(),
		CancelItem:            c.CreateCancelItemCommandHandler(),
		AcceptItem:            c.CreateAcceptItemCommandHandler(),
		AdvanceItem:           c.CreateAdvanceItemCommandHandler(),
		DeliverItem:           c.CreateDeliverItemCommandHandler(),
		RequestWithdrawal:     c.CreateRequestWithdrawalCommandHandler(),
		CancelWithdrawal:      c.CreateCancelWithdrawalCommandHandler(),
		ReviewWithdrawal:      c.CreateReviewWithdrawalCommandHandler(),
		ReportViolation:       c.CreateReportViolationCommandHandler(),
		ChangeViolationStatus: c.CreateChangeViolationStatusCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetDriverBalance:      c.CreateGetDriverBalanceQueryHandler(),
		GetDriverWithdrawals:  c.CreateGetDriverWithdrawalsQueryHandler(),
		GetWithdrawal:         c.CreateGetWithdrawalQueryHandler(),
		ListWithdrawals:       c.CreateListWithdrawalsQueryHandler(),
		GetWithdrawalStats:    c.CreateGetWithdrawalStatsQueryHandler(),
		GetMyViolationReports: c.CreateGetMyViolationReportsQueryHandler(),
		ListViolations:        c.CreateListViolationsQueryHandler(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) withdrawalUoWFactory() commands.WithdrawalUoWFactory {
	return FuncWithdrawalUoWFactory(func() commands.WithdrawalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) violationUoWFactory() commands.ViolationUoWFactory {
	return FuncViolationUoWFactory(func() commands.ViolationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.calculator)
	return &h
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() *commands.AddOrderItemCommandHandler {
	h := commands.NewAddOrderItemCommandHandler(c.orderUoWFactory(), c.calculator)
	return &h
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() *commands.RemoveOrderItemCommandHandler {
	h := commands.NewRemoveOrderItemCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeItemInsuranceCommandHandler() *commands.ChangeItemInsuranceCommandHandler {
	h := commands.NewChangeItemInsuranceCommandHandler(c.orderUoWFactory(), c.calculator)
	return &h
}

func (c *CompositionRoot) CreateCancelItemCommandHandler() *commands.CancelItemCommandHandler {
	h := commands.NewCancelItemCommandHandler(c.orderUoWFactory(), c.cfg.CancelReasonMinLength)
	return &h
}

func (c *CompositionRoot) CreateAcceptItemCommandHandler() *commands.AcceptItemCommandHandler {
	h := commands.NewAcceptItemCommandHandler(c.orderUoWFactory(), c.suspensions)
	return &h
}

func (c *CompositionRoot) CreateAdvanceItemCommandHandler() *commands.AdvanceItemCommandHandler {
	h := commands.NewAdvanceItemCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeliverItemCommandHandler() *commands.DeliverItemCommandHandler {
	h := commands.NewDeliverItemCommandHandler(c.deliveryUoWFactory(), c.settlement)
	return &h
}

func (c *CompositionRoot) CreateRequestWithdrawalCommandHandler() *commands.RequestWithdrawalCommandHandler {
	h := commands.NewRequestWithdrawalCommandHandler(c.withdrawalUoWFactory(), c.feePolicy)
	return &h
}

func (c *CompositionRoot) CreateCancelWithdrawalCommandHandler() *commands.CancelWithdrawalCommandHandler {
	h := commands.NewCancelWithdrawalCommandHandler(c.withdrawalUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateReviewWithdrawalCommandHandler() *commands.ReviewWithdrawalCommandHandler {
	h := commands.NewReviewWithdrawalCommandHandler(c.withdrawalUoWFactory(), c.settlement)
	return &h
}

func (c *CompositionRoot) CreateReportViolationCommandHandler() *commands.ReportViolationCommandHandler {
	h := commands.NewReportViolationCommandHandler(c.violationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeViolationStatusCommandHandler() *commands.ChangeViolationStatusCommandHandler {
	h := commands.NewChangeViolationStatusCommandHandler(
		c.violationUoWFactory(),
		c.settlement,
		c.suspensions,
		c.logger.With("component", "violation_status"),
	)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverBalanceQueryHandler() queries.GetDriverBalanceQueryHandler {
	return queries.NewGetDriverBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverWithdrawalsQueryHandler() queries.GetDriverWithdrawalsQueryHandler {
	return queries.NewGetDriverWithdrawalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWithdrawalQueryHandler() queries.GetWithdrawalQueryHandler {
	return queries.NewGetWithdrawalQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListWithdrawalsQueryHandler() queries.ListWithdrawalsQueryHandler {
	return queries.NewListWithdrawalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWithdrawalStatsQueryHandler() queries.GetWithdrawalStatsQueryHandler {
	return queries.NewGetWithdrawalStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMyViolationReportsQueryHandler() queries.GetMyViolationReportsQueryHandler {
	return queries.NewGetMyViolationReportsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListViolationsQueryHandler() queries.ListViolationsQueryHandler {
	return queries.NewListViolationsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncWithdrawalUoWFactory func() commands.WithdrawalUoW

func (f FuncWithdrawalUoWFactory) Create() commands.WithdrawalUoW {
	return f()
}

type FuncViolationUoWFactory func() commands.ViolationUoW

func (f FuncViolationUoWFactory) Create() commands.ViolationUoW {
	return f()
}
