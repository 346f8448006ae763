package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "petstore-backend/internal/adapters/web"
	"petstore-backend/internal/app"
	"petstore-backend/internal/core"
	"petstore-backend/internal/db"
	"petstore-backend/internal/notify"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	var notifier core.Notifier = &notify.LogNotifier{Logger: logger}
	if smtp := notify.NewSMTPFromEnv(); smtp != nil {
		notifier = smtp
	} else {
		logger.Println("Warning: SMTP_ADDR is not set, order emails go to the log")
	}

	svc := app.NewAppService(pool, notifier, logger)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret, logger)

	logger.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
