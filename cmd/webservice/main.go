package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shopsphere/catalog-service/config"
	"github.com/shopsphere/catalog-service/internal/controller"
	"github.com/shopsphere/catalog-service/internal/infrastructure/database/mongodb"
	kafkainfra "github.com/shopsphere/catalog-service/internal/infrastructure/message-queue/kafka"
	s3infra "github.com/shopsphere/catalog-service/internal/infrastructure/objectstorage/s3"
	"github.com/shopsphere/catalog-service/internal/infrastructure/tracing"
	"github.com/shopsphere/catalog-service/internal/repository"
	"github.com/shopsphere/catalog-service/internal/service"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", config.MongoDBConfig.DBHost, config.MongoDBConfig.DBPort), config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}
	defer db.Client().Disconnect(context.Background())

	s3Client, err := s3infra.CreateS3Client(config.S3Config)
	if err != nil {
		panic(err)
	}

	kafkaProducer := kafkainfra.CreateKafkaProducer(config)
	kafkaReader := kafkainfra.CreateKafkaReader(config)

	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if traceProvider == nil {
			return
		}
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shut down tracing")
		}
	}()

	e := echo.New()
	g := e.Group("/api/v1")

	if traceProvider != nil {
		tracer := traceProvider.Tracer("catalog-service")
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	if config.AllowedOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{config.AllowedOrigin},
			AllowCredentials: true,
		}))
	}

	IsLoggedIn := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(config.JWTSecret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			errorResponse := map[string]interface{}{
				"status":  "error",
				"message": "Invalid or expired JWT",
				"errors":  nil,
			}
			return c.JSON(http.StatusUnauthorized, errorResponse)
		},
	})

	productRepo := repository.CreateNewMongoDBRepository(db)
	userRepo := repository.CreateNewMongoDBUserRepository(db)
	objectStorageRepo := repository.CreateNewS3ObjectStorageRepository(s3Client, config.S3Config.Bucket, s3infra.BucketURL(config.S3Config))
	messageQueueRepo := repository.CreateNewKafkaMessageQueueRepository(kafkaProducer)

	svc := service.CreateProductService(productRepo, userRepo, objectStorageRepo, messageQueueRepo, *config, kafkaReader)
	controller.CreateProductController(g, svc, IsLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	go svc.ConsumeEvent()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
