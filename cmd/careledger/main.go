package main

import (
	"fmt"

	"careledger/internal/app/carelog"
	"careledger/internal/app/config"
	"careledger/internal/app/dsn"
	"careledger/internal/app/handler"
	"careledger/internal/app/middleware"
	"careledger/internal/app/pkg/auth"
	"careledger/internal/app/pkg/storage"
	"careledger/internal/app/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	jwtSvc := auth.NewJWTService(cfg.JWTSecret)
	sessionSvc, err := auth.NewSessionService(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer sessionSvc.Close()

	minioEndpoint := fmt.Sprintf("%s:%s", cfg.MinIOHost, cfg.MinIOPort)
	minioClient, err := storage.NewMinIO(minioEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, false, "http://"+minioEndpoint)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to minio")
	}

	svc := carelog.NewService(repo, log.StandardLogger())
	authSvc := &middleware.AuthService{JWT: jwtSvc, Session: sessionSvc}
	h := handler.NewHandler(repo, svc, cfg, authSvc, minioClient)

	router := gin.Default()
	h.RegisterHandler(router)

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	log.WithField("addr", addr).Info("starting careledger")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
