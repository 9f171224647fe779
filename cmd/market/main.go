package main

import (
	"context"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mazdady-market/internal/app"
	elasticService "mazdady-market/internal/elastic_search"
	"mazdady-market/internal/etl"
	handlersAdmin "mazdady-market/internal/handlers/admin"
	handlersListing "mazdady-market/internal/handlers/listing"
	handlersUser "mazdady-market/internal/handlers/user"
	"mazdady-market/internal/kafka"
	"mazdady-market/internal/marketplace"
	"mazdady-market/internal/middleware"
	"mazdady-market/internal/session"
	"mazdady-market/internal/social"
	"mazdady-market/internal/storage"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	ctx := context.Background()

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.CfgRedis.Addr,
		Password: c.CfgRedis.Password,
		DB:       c.CfgRedis.DB,
	})

	// memory fallback keeps the engine usable without Redis; nothing
	// survives a restart in that mode
	var store storage.Storage = storage.NewRedisStorage(redisClient, logger)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warnf("redis unavailable, falling back to in-memory storage: %v", err)
		store = storage.NewMemoryStorage()
	}

	// init state container
	sets := social.NewSets(store, logger)
	if err := sets.Load(ctx); err != nil {
		logger.Fatalf("error to load social sets: %v", err)
	}

	market := marketplace.NewMarketplace(store, logger, sets)
	if err := market.Load(ctx); err != nil {
		logger.Fatalf("error to load marketplace state: %v", err)
	}

	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)

	// init kafka producer
	producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	defer producer.Close()

	// init elasticsearch + etl
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: c.CfgES.Addresses})
	if err != nil {
		logger.Fatalf("error to create elasticsearch client: %v", err)
	}
	es := elasticService.NewService(esClient, logger, c.CfgES.Index)
	if err := es.EnsureIndex(ctx); err != nil {
		logger.Errorf("failed to ensure search index: %v", err)
	}

	pipeline := etl.NewPipeline(
		etl.NewSnapshotExtractor(market, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(es, logger),
		logger,
		c.ETLInterval,
	)
	go pipeline.Run(ctx)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler())

	// init handlers
	listingHandlers := handlersListing.NewListingHandler(logger, market, producer)
	userHandlers := handlersUser.NewUserHandler(logger, market, sessionRepository)
	adminHandlers := handlersAdmin.NewAdminHandler(logger, market)

	// authenticated routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(sessionRepository, logger))

	authRouter.HandleFunc("/listing", listingHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/listing/{id}", listingHandlers.Update).Methods("PUT")
	authRouter.HandleFunc("/listing/{id}/like", listingHandlers.ToggleLike).Methods("POST")
	authRouter.HandleFunc("/listing/{id}/favorite", listingHandlers.ToggleFavorite).Methods("POST")
	authRouter.HandleFunc("/listing/{id}/share", listingHandlers.Share).Methods("POST")
	authRouter.HandleFunc("/listing/{id}/review", listingHandlers.AddReview).Methods("POST")
	authRouter.HandleFunc("/listing/{id}/comment", listingHandlers.AddComment).Methods("POST")
	authRouter.HandleFunc("/listing/{id}/comment/{comment_id}/reply", listingHandlers.AddReply).Methods("POST")
	authRouter.HandleFunc("/listing/{id}/comment/{comment_id}", listingHandlers.DeleteComment).Methods("DELETE")
	authRouter.HandleFunc("/listing/{id}/report", listingHandlers.Report).Methods("POST")
	authRouter.HandleFunc("/user/profile", userHandlers.ChangeProfile).Methods("PUT")

	// moderation routes
	adminRouter := r.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(middleware.Auth(sessionRepository, logger))
	adminRouter.Use(middleware.AdminOnly(logger))

	adminRouter.HandleFunc("/moderation", adminHandlers.ModerationQueue).Methods("GET")
	adminRouter.HandleFunc("/listing/{id}/remove", adminHandlers.RemoveListing).Methods("POST")
	adminRouter.HandleFunc("/listing/{id}/approve", adminHandlers.ApproveListing).Methods("POST")
	adminRouter.HandleFunc("/user/{id}/ban", adminHandlers.BanUser).Methods("POST")
	adminRouter.HandleFunc("/user/{id}/unban", adminHandlers.UnbanUser).Methods("POST")
	adminRouter.HandleFunc("/category", adminHandlers.AddCategory).Methods("POST")
	adminRouter.HandleFunc("/category/{id}", adminHandlers.RemoveCategory).Methods("DELETE")
	adminRouter.HandleFunc("/tiers", adminHandlers.UpdateTiers).Methods("PUT")
	adminRouter.HandleFunc("/config", adminHandlers.Config).Methods("GET")
	adminRouter.HandleFunc("/config", adminHandlers.UpdateConfig).Methods("PUT")

	// public routes
	noAuthRouter := r.PathPrefix("/api").Subrouter()

	noAuthRouter.HandleFunc("/user/register", userHandlers.Register).Methods("POST")
	noAuthRouter.HandleFunc("/user/login", userHandlers.Login).Methods("POST")
	noAuthRouter.HandleFunc("/user/{id}", userHandlers.Info).Methods("GET")
	noAuthRouter.HandleFunc("/listing/{id}", listingHandlers.GetByID).Methods("GET")
	noAuthRouter.HandleFunc("/listings", listingHandlers.Browse).Methods("GET")
	noAuthRouter.HandleFunc("/seller/{id}/listings", listingHandlers.BySeller).Methods("GET")
	noAuthRouter.HandleFunc("/categories", adminHandlers.Categories).Methods("GET")
	noAuthRouter.HandleFunc("/tiers", adminHandlers.Tiers).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}
