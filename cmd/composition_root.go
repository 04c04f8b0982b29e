package cmd

import (
	"context"
	"log/slog"
	"os"

	"courierhub/internal/adapters/in/http"
	"courierhub/internal/adapters/out/notifier"
	"courierhub/internal/adapters/out/postgres"
	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, handlers, and jobs together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.AccessPolicy
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from config and an open
// database connection. The SMS gateway is optional; without a URL the
// dispatcher silently drops messages to the log.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var gateway ports.NotificationGateway = noopGateway{}
	if config.SmsGatewayURL != "" {
		g, err := notifier.NewHTTPSMSGateway(config.SmsGatewayURL, nil)
		if err == nil {
			gateway = g
		}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewAccessPolicy(),
		dispatcher: notifier.NewAsyncDispatcher(gateway, logger),
		logger:     logger,
	}
}

// Logger returns the process-wide structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.CreateDeliveryUoWFactory = FuncCreateDeliveryUoWFactory(func() commands.CreateDeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRiderCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateRejectDeliveryCommandHandler() commands.RejectDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectDeliveryCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.ProgressUoWFactory = FuncProgressUoWFactory(func() commands.ProgressUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateSetDeliveryFeeCommandHandler() commands.SetDeliveryFeeCommandHandler {
	var f commands.FeeUoWFactory = FuncFeeUoWFactory(func() commands.FeeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDeliveryFeeCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateInvoiceCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateGetDeliveryTimelineQueryHandler() queries.GetDeliveryTimelineQueryHandler {
	return queries.NewGetDeliveryTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalePendingConfirmationsQueryHandler() queries.GetStalePendingConfirmationsQueryHandler {
	return queries.NewGetStalePendingConfirmationsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server over all handlers.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateRejectDeliveryCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateSetDeliveryFeeCommandHandler(),
		c.CreateGenerateInvoiceCommandHandler(),
		c.CreateGetDeliveryTimelineQueryHandler(),
	)
}

// CreateJobManager builds the background job coordinator.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStalePendingConfirmationsQueryHandler(),
		c.dispatcher,
		c.logger,
	)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCreateDeliveryUoWFactory func() commands.CreateDeliveryUoW

func (f FuncCreateDeliveryUoWFactory) Create() commands.CreateDeliveryUoW {
	return f()
}

type FuncProgressUoWFactory func() commands.ProgressUoW

func (f FuncProgressUoWFactory) Create() commands.ProgressUoW {
	return f()
}

type FuncFeeUoWFactory func() commands.FeeUoW

func (f FuncFeeUoWFactory) Create() commands.FeeUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

// noopGateway stands in when no SMS gateway is configured.
type noopGateway struct{}

func (noopGateway) Send(_ context.Context, _ string, _ string) error {
	return nil
}
