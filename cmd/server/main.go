package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/database"
	"github.com/Tushar07778/expert-session-booking/internal/handler"
	"github.com/Tushar07778/expert-session-booking/internal/middleware"
	"github.com/Tushar07778/expert-session-booking/internal/notify"
	"github.com/Tushar07778/expert-session-booking/internal/queue"
	"github.com/Tushar07778/expert-session-booking/internal/repository"
	"github.com/Tushar07778/expert-session-booking/internal/router"
	"github.com/Tushar07778/expert-session-booking/internal/service"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient(cfg.Redis) // nil when disabled or unreachable
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Printf("redis unavailable: rate limiting falls back to memory, cache and relay disabled")
	}

	// Viewers always subscribe to the local hub. With Redis the relay is the
	// publish target and feeds every instance's hub.
	hub := notify.NewHub(cfg.SubscriberBuffer)
	var bus notify.Publisher = hub
	if rdb != nil {
		relay := notify.NewRedisRelay(rdb, cfg.EventsChannel, hub)
		ps, err := relay.Subscribe(ctx)
		if err != nil {
			log.Printf("event relay disabled: %v", err)
		} else {
			go func() {
				if err := relay.Run(ctx, ps); err != nil {
					log.Printf("event relay stopped: %v", err)
				}
			}()
			bus = relay
		}
	}
	sinks := notify.Fanout{bus}
	if cfg.RabbitMQURL != "" {
		audit := queue.NewPublisher(cfg.RabbitMQURL, cfg.SlotBookedQueue)
		defer audit.Close()
		sinks = append(sinks, audit)
	}

	svc := service.New(
		repository.NewExpertRepo(db),
		repository.NewReservationRepo(db),
		sinks,
		service.Options{PublishTimeout: cfg.PublishTimeout},
	)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.ClientURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	limiters := middleware.NewLimiterStore(cfg.RateLimit.PerSecond(), cfg.RateLimit.Capacity,
		middleware.WithIdleTTL(cfg.RateLimit.TTL))
	limiters.StartJanitor(ctx)

	bookings := &handler.BookingHandler{Svc: svc}
	router.RegisterRoutes(e, db)
	router.RegisterPublic(e, &handler.ExpertHandler{Svc: svc}, middleware.NewRedisCache(cfg.Cache, rdb))
	router.RegisterBookings(e, bookings, middleware.NewTokenBucket(cfg.RateLimit, rdb, limiters))
	router.RegisterOperator(e, bookings, cfg.OperatorJWTSecret)
	router.RegisterEvents(e, &handler.EventsHandler{Hub: hub, Heartbeat: cfg.SSEHeartbeat})
	if cfg.OperatorJWTSecret == "" {
		log.Printf("OPERATOR_JWT_SECRET is empty: status updates are unauthenticated")
	}

	// SSE streams outlive e.Shutdown unless their subscriptions end.
	e.Server.RegisterOnShutdown(hub.Close)

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DB.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	svc.Wait() // let in-flight slot_booked publishes finish
}
