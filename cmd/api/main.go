package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quickshare/api/internal/account"
	"github.com/quickshare/api/internal/auth"
	"github.com/quickshare/api/internal/config"
	"github.com/quickshare/api/internal/image"
	"github.com/quickshare/api/internal/server"
	"github.com/quickshare/api/internal/share"
	"github.com/quickshare/api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dynamoClient, err := storage.NewDynamoClient(ctx, cfg.Dynamo)
	if err != nil {
		log.Fatalf("connect dynamodb: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		log.Fatalf("ensure bucket: %v", err)
	}

	itemStore := storage.NewItemStore(dynamoClient)
	objectStore := storage.NewObjectStore(minioClient, cfg.MinIO.Bucket)

	accountService := account.NewService(itemStore, cfg.Dynamo.UsersTable, cfg.Auth.BcryptCost)
	authService := auth.NewService(accountService, cfg.Auth)
	shareService := share.NewService(itemStore, cfg.Dynamo.SharesTable, cfg.Images.BaseURL)
	imageService := image.NewService(itemStore, objectStore, cfg.Dynamo.ImagesTable, cfg.Images.UploadTTL)

	router := server.NewRouter(server.Dependencies{
		Config:         cfg,
		Dynamo:         dynamoClient,
		ObjectStore:    minioClient,
		AuthService:    authService,
		AccountService: accountService,
		ShareService:   shareService,
		ImageService:   imageService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("QuickShare API listening on %s", cfg.Server.Address())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("shutting down gracefully...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
