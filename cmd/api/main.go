package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/auth"
	"github.com/Hopetizzy/Abisam-properties/internal/cache"
	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
	"github.com/Hopetizzy/Abisam-properties/internal/chat"
	"github.com/Hopetizzy/Abisam-properties/internal/config"
	"github.com/Hopetizzy/Abisam-properties/internal/db"
	"github.com/Hopetizzy/Abisam-properties/internal/dialogue"
	"github.com/Hopetizzy/Abisam-properties/internal/genai"
	"github.com/Hopetizzy/Abisam-properties/internal/handlers"
	"github.com/Hopetizzy/Abisam-properties/internal/leads"
	"github.com/Hopetizzy/Abisam-properties/internal/middleware"
	"github.com/Hopetizzy/Abisam-properties/internal/notifications"
	"github.com/Hopetizzy/Abisam-properties/internal/validation"
	"github.com/Hopetizzy/Abisam-properties/internal/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Sessions live in the cache, so the in-memory fallback stays usable
	// on a single instance even without Redis.
	var cacheStore cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "abisam-backend",
		}
	}

	catalogRepo := catalog.NewRepository(cols.Properties)
	table, err := catalog.LoadTable(ctx, catalogRepo)
	if err != nil {
		logger.Error("catalog load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	holder := catalog.NewHolder(table)
	logger.Info("catalog loaded", slog.Int("count", table.Len()))

	var mailer leads.EmailNotifier
	if brevo := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox); brevo != nil {
		mailer = brevo
	} else {
		logger.Info("brevo mailer disabled")
	}
	var sheets leads.SheetsPusher
	if sc := notifications.NewSheetsClient(cfg.LeadWebhookURL); sc != nil {
		sheets = sc
	} else {
		logger.Info("sheets webhook disabled")
	}

	val := validation.New()

	leadsRepo := leads.NewRepository(cols.Leads)
	leadsService := leads.NewService(leadsRepo, cfg.Timezone, sheets, mailer, cfg.LeadNotifyEmail, logger)
	leadsHandler := leads.NewHandler(leadsService, val, logger)

	genaiClient := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	var gen dialogue.Generator
	if genaiClient != nil {
		gen = genaiClient
		logger.Info("genai enabled", slog.String("model", cfg.GeminiModel))
	} else {
		logger.Info("genai disabled, rule-based replies only")
	}

	classifier := assistant.NewClassifier(rand.New(rand.NewSource(time.Now().UnixNano())))
	machine := dialogue.NewMachine(classifier, holder, gen, leadsService,
		time.Duration(cfg.FallbackDelayMS)*time.Millisecond, cfg.Timezone, logger)

	links := whatsapp.NewBuilder(cfg.WhatsAppPhone)
	sessionStore := chat.NewStore(cacheStore, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	chatHandler := chat.NewHandler(sessionStore, machine, genaiClient, links, val, logger)

	server := &handlers.Server{
		Cfg:         cfg,
		Cols:        cols,
		Val:         val,
		Log:         logger,
		Cache:       cacheStore,
		Catalog:     holder,
		CatalogRepo: catalogRepo,
		Links:       links,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	chatLimiter := middleware.NewRateLimiter(cfg.RateLimitChat, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/properties", server.GetProperties)
		api.Get("/properties/{id}", server.GetProperty)
		api.Get("/properties/{id}/whatsapp", server.GetPropertyWhatsApp)

		api.Route("/chat", func(c chi.Router) {
			c.Post("/sessions", chatHandler.CreateSession)
			c.Get("/sessions/{id}", chatHandler.GetSession)
			c.With(chatLimiter.Middleware).Post("/sessions/{id}/messages", chatHandler.PostMessage)
			c.Post("/sessions/{id}/reset", chatHandler.ResetSession)
			c.Get("/sessions/{id}/handoff", chatHandler.Handoff)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", server.AdminLogin)
			admin.Post("/refresh", server.AdminRefresh)
			admin.Post("/logout", server.AdminLogout)

			// chi requires middlewares before routes, so the protected
			// surface lives on a sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))
				protected.Post("/properties", server.AdminCreateProperty)
				protected.Put("/properties/{id}", server.AdminUpdateProperty)
				protected.Delete("/properties/{id}", server.AdminDeleteProperty)
				protected.Get("/leads", leadsHandler.AdminList)
				protected.Get("/leads/{id}", leadsHandler.AdminGetByID)
				protected.Patch("/leads/{id}/status", leadsHandler.AdminUpdateStatus)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
