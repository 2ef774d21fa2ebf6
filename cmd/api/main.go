package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-marketing/internal/common/api"
	"go-marketing/internal/config"
	"go-marketing/internal/connectors"
	"go-marketing/internal/database"
	"go-marketing/internal/features/action_history"
	"go-marketing/internal/features/campaign"
	"go-marketing/internal/features/customer"
	"go-marketing/internal/features/export"
	"go-marketing/internal/features/product"
	"go-marketing/internal/features/sale"
	"go-marketing/internal/features/segment"
	"go-marketing/internal/features/sync"
	"go-marketing/internal/features/system"
	"go-marketing/internal/features/template"
	"go-marketing/internal/logger"
	"go-marketing/internal/middleware"
	"go-marketing/pkg/filter"
	"go-marketing/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Filter engine
			filter.DefaultRegistry,
			filter.NewEvaluator,

			// Initialize Repository
			customer.NewCustomerRepository,
			sale.NewSaleRepository,
			product.NewProductRepository,
			segment.NewSegmentRepository,
			template.NewTemplateRepository,
			campaign.NewCampaignRepository,
			sync.NewSyncSettingRepository,
			sync.NewSyncLogRepository,
			action_history.NewActionHistoryStore,

			// Initialize Service
			customer.NewCustomerService,
			sale.NewSaleService,
			product.NewProductService,
			action_history.NewActionHistoryService,
			segment.NewSegmentService,
			template.NewTemplateService,
			campaign.NewLogMessageSender,
			campaign.NewActionExecutor,
			campaign.NewCampaignService,
			campaign.NewScheduler,
			export.NewExportService,
			sync.NewSyncService,
			system.NewHub,

			// Interface Adapters to satisfy cross-feature dependencies
			func(s customer.CustomerService) segment.CustomerSource { return s },
			func(s sale.SaleService) segment.SaleSource { return s },
			func(s product.ProductService) segment.ProductSource { return s },
			func(s action_history.ActionHistoryService) segment.HistoryRecorder { return s },
			func(s action_history.ActionHistoryService) campaign.HistoryRecorder { return s },
			func(s action_history.ActionHistoryService) export.HistoryRecorder { return s },
			func(s segment.SegmentService) campaign.SegmentEvaluator { return s },
			func(s segment.SegmentService) export.SegmentProvider { return s },
			func(s customer.CustomerService) campaign.CustomerSource { return s },
			func(s customer.CustomerService) export.CustomerSource { return s },
			func(s template.TemplateService) campaign.TemplateProvider { return s },
			func(h *system.Hub) action_history.EventPublisher { return h },
			func(h *system.Hub) campaign.EventPublisher { return h },
			func(r customer.CustomerRepository) sync.CustomerImporter { return r },
			func(r sale.SaleRepository) sync.SaleImporter { return r },
			func(r product.ProductRepository) sync.ProductImporter { return r },
			func() sync.ConnectorFactory { return connectors.NewExternalDBConnector },

			// Initialize Controller
			customer.NewCustomerController,
			sale.NewSaleController,
			product.NewProductController,
			segment.NewSegmentController,
			action_history.NewActionHistoryController,
			template.NewTemplateController,
			campaign.NewCampaignController,
			export.NewExportController,
			sync.NewSyncController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(customer.NewCustomerApi),
			AsRoute(sale.NewSaleApi),
			AsRoute(product.NewProductApi),
			AsRoute(segment.NewSegmentApi),
			AsRoute(action_history.NewActionHistoryApi),
			AsRoute(template.NewTemplateApi),
			AsRoute(campaign.NewCampaignApi),
			AsRoute(export.NewExportApi),
			AsRoute(sync.NewSyncApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler *campaign.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						scheduler.Stop()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
