package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Executor runs a command that produces no result.
type Executor[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handler runs a command or query that produces a result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers are the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder           Executor[commands.CreateOrderCommand]
	AddOrderItem          Executor[commands.AddOrderItemCommand]
	RemoveOrderItem       Executor[commands.RemoveOrderItemCommand]
	ChangeItemInsurance   Executor[commands.ChangeItemInsuranceCommand]
	CancelItem            Executor[commands.CancelItemCommand]
	AcceptItem            Executor[commands.AcceptItemCommand]
	AdvanceItem           Executor[commands.AdvanceItemCommand]
	DeliverItem           Handler[commands.DeliverItemCommand, kernel.Money]
	RequestWithdrawal     Handler[commands.RequestWithdrawalCommand, *withdrawal.Withdrawal]
	CancelWithdrawal      Executor[commands.CancelWithdrawalCommand]
	ReviewWithdrawal      Handler[commands.ReviewWithdrawalCommand, *withdrawal.Withdrawal]
	ReportViolation       Handler[commands.ReportViolationCommand, *violation.Violation]
	ChangeViolationStatus Handler[commands.ChangeViolationStatusCommand, *violation.Violation]

	// Query handlers
	GetOrder              Handler[queries.GetOrderQuery, queries.OrderView]
	GetDriverBalance      Handler[queries.GetDriverBalanceQuery, queries.DriverBalance]
	GetDriverWithdrawals  Handler[queries.GetDriverWithdrawalsQuery, queries.Page[queries.WithdrawalView]]
	GetWithdrawal         Handler[queries.GetWithdrawalQuery, queries.WithdrawalView]
	ListWithdrawals       Handler[queries.ListWithdrawalsQuery, queries.Page[queries.WithdrawalView]]
	GetWithdrawalStats    Handler[queries.GetWithdrawalStatsQuery, queries.WithdrawalStats]
	GetMyViolationReports Handler[queries.GetMyViolationReportsQuery, queries.Page[queries.ViolationView]]
	ListViolations        Handler[queries.ListViolationsQuery, queries.Page[queries.ViolationView]]
}

// Server exposes the settlement use cases as a JSON API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers   Handlers
	calculator *pricing.Calculator
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, calculator *pricing.Calculator) *Server {
	return &Server{
		handlers:   handlers,
		calculator: calculator,
	}
}

type Options struct {
	JWTSecret []byte
	Document  *openapi3.T
	Logger    *slog.Logger
}

// NewEcho builds the echo instance with middleware and every route of the API.
func NewEcho(s *Server, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(opts.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(opts.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", Authenticate(opts.JWTSecret), OpenAPIValidator(opts.Document))

	api.POST("/pricing/quote", s.QuotePrice)

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder, RequireRole(RoleCustomer))
	orders.GET("/:orderId", s.GetOrder)
	orders.POST("/:orderId/items", s.AddOrderItem, RequireRole(RoleCustomer, RoleAdmin))
	orders.DELETE("/:orderId/items/:itemId", s.RemoveOrderItem, RequireRole(RoleCustomer, RoleAdmin))
	orders.PUT("/:orderId/items/:itemId/insurance", s.ChangeItemInsurance, RequireRole(RoleCustomer, RoleAdmin))
	orders.PUT("/:orderId/items/:itemId/cancel", s.CancelItem, RequireRole(RoleCustomer, RoleAdmin))

	driver := api.Group("/driver", RequireRole(RoleDriver))
	driver.PUT("/orders/:orderId/items/:itemId/accept", s.AcceptItem)
	driver.PUT("/orders/:orderId/items/:itemId/pickup", s.PickUpItem)
	driver.PUT("/orders/:orderId/items/:itemId/delivering", s.StartDelivering)
	driver.PUT("/orders/:orderId/items/:itemId/deliver", s.DeliverItem)
	driver.GET("/balance", s.GetDriverBalance)
	driver.POST("/withdrawal/request", s.RequestWithdrawal)
	driver.GET("/withdrawal/history", s.GetWithdrawalHistory)
	driver.GET("/withdrawal/:id", s.GetDriverWithdrawal)
	driver.PUT("/withdrawal/:id/cancel", s.CancelWithdrawal)

	admin := api.Group("/admin", RequireRole(RoleAdmin))
	admin.GET("/withdrawals", s.ListWithdrawals)
	admin.GET("/withdrawals/stats", s.GetWithdrawalStats)
	admin.GET("/withdrawals/export", s.ExportWithdrawals)
	admin.GET("/withdrawals/:id", s.GetWithdrawal)
	admin.PUT("/withdrawals/:id/approve", s.ApproveWithdrawal)
	admin.PUT("/withdrawals/:id/reject", s.RejectWithdrawal)
	admin.PUT("/withdrawals/:id/complete", s.CompleteWithdrawal)

	violations := api.Group("/violations")
	violations.POST("/report", s.ReportViolation, RequireRole(RoleCustomer))
	violations.GET("/my-reports", s.GetMyViolationReports, RequireRole(RoleCustomer))
	violations.GET("/admin/all", s.ListViolations, RequireRole(RoleAdmin))
	violations.PUT("/admin/:id/status", s.ChangeViolationStatus, RequireRole(RoleAdmin))

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency.Round(time.Microsecond)),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	})
}
