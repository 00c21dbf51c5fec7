package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Bizops-api/internal/application/auth"
	"github.com/jhoicas/Bizops-api/internal/application/booking"
	"github.com/jhoicas/Bizops-api/internal/application/gateway"
	"github.com/jhoicas/Bizops-api/internal/application/reporting"
	"github.com/jhoicas/Bizops-api/internal/application/usecase"
	"github.com/jhoicas/Bizops-api/internal/domain/repository"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/cache"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/memory"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bizops-api/internal/interfaces/http"
	"github.com/jhoicas/Bizops-api/pkg/config"
	"github.com/jhoicas/Bizops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Bool("redis", cfg.Redis.Enabled()).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Almacenamiento: PostgreSQL o memoria (desarrollo local)
	var (
		stores repository.Stores
		tx     repository.TxRunner
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.Open()
		defer store.Close()
		stores, tx = store.Stores(), store
		log.Warn().Msg("usando almacenamiento en memoria: los datos no sobreviven al reinicio")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		}
		stores, tx = postgres.NewStores(pool), postgres.NewTxRunner(pool)
	}

	m := metrics.New("bizops")
	gw := gateway.New(stores, m.Deny)
	moduleSvc := usecase.NewModuleService(stores.CompanyModules)

	// Caché de agendas: L1 en memoria y, si hay Redis, L2 compartido con invalidación pub/sub.
	local := cache.NewInMemory(time.Minute)
	var calendars cache.Cache = local
	if cfg.Redis.Enabled() {
		l2 := cache.NewRedis(cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.Prefix,
		})
		if err := l2.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		invalidator := cache.NewInvalidator(local, l2.Client(), log.Component("cache"))
		go invalidator.Start(ctx)
		defer invalidator.Close()
		calendars = cache.NewTiered(local, l2, cfg.Booking.CacheTTL, invalidator)
	}
	defer calendars.Close()

	bookingSvc := booking.NewService(gw, tx, booking.Config{
		HorizonDays:     cfg.Booking.HorizonDays,
		CacheTTL:        cfg.Booking.CacheTTL,
		DefaultTimezone: cfg.Booking.DefaultTimezone,
	}, log.Zerolog(),
		booking.WithCache(calendars),
		booking.WithRecorder(m),
		booking.WithModuleChecker(moduleSvc),
	)

	resources := usecase.NewResources(gw,
		usecase.WithValidator(bookingSvc.ValidateWindow),
		usecase.WithAfterWrite(bookingSvc.WindowChanged),
	)

	authUC := auth.NewAuthUseCase(gw, tx, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Booking.DefaultTimezone)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bizops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := calendars.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "cache": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Booking:     bookingSvc,
		Modules:     moduleSvc,
		Resources:   resources,
		Dashboard:   reporting.NewDashboardUseCase(gw),
		Metrics:     m,
		RateLimiter: httpRouter.NewRateLimiter(cfg.Booking.RatePerMinute, cfg.Booking.RateBurst),
		Log:         log.Zerolog(),
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
