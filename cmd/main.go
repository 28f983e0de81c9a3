package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"freightdesk/backend/internal/api/handler"
	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/notify"
	"freightdesk/backend/internal/storage"
	"freightdesk/backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Complaint{},
		&models.Transaction{},
		&models.Rejection{},
		&models.Evidence{},
		&models.StaffUser{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting FreightDesk Workflow Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Workflow services
	engine := workflow.NewEngine(s)
	queue := workflow.NewApprovalQueue(s, engine)

	// 3. Notification hub (+ optional Telegram alerts for approvers)
	hub := notify.NewHub(s)
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		alerter, err := notify.NewTelegramAlerter(token, s)
		if err != nil {
			log.Printf("WARNING: Telegram alerter disabled: %v", err)
		} else {
			hub.AddAlerter(alerter)
		}
	}
	go hub.Run()

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(engine, queue, hub)

	authed := r.Group("/", handler.ActorMiddleware())
	authed.POST("/complaints", h.SubmitComplaint)
	authed.GET("/complaints", h.ListComplaints)
	authed.GET("/complaints/:id", h.GetComplaint)
	authed.GET("/complaints/:id/timeline", h.GetTimeline)
	authed.POST("/complaints/:id/actions", h.ApplyAction)
	authed.POST("/complaints/:id/evidence", h.AttachEvidence)
	authed.GET("/approvals/pending", h.ListApprovals)
	authed.GET("/ws", h.DashboardSocket)

	server := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
