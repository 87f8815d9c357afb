package server

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/shadow-chat/internal/database"
	"github.com/thereayou/shadow-chat/internal/handlers"
	"github.com/thereayou/shadow-chat/internal/services"
	"github.com/thereayou/shadow-chat/internal/websocket"
	"github.com/thereayou/shadow-chat/pkg/storage"
)

type Server struct {
	Router  *gin.Engine
	DB      *database.Database
	Redis   *redis.Client
	Hub     *websocket.Hub
	Cleanup *services.CleanupService

	stopCleanup func()
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	objectStore, err := storage.NewMinioStore(
		os.Getenv("MINIO_ENDPOINT"),
		os.Getenv("MINIO_ACCESS_KEY"),
		os.Getenv("MINIO_SECRET_KEY"),
		envOrDefault("MINIO_BUCKET", "chat-images"),
		os.Getenv("MINIO_USE_SSL") == "true",
	)
	if err != nil {
		log.Fatalf("MinIO connect failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	cleanup := services.NewCleanupService(dbConn)
	stopCleanup := cleanup.Start(cleanupCheckPeriod())

	roomService := services.NewRoomService(dbConn)
	chatService := services.NewChatService(dbConn, hub)
	userService := services.NewUserService(dbConn, rdb)
	statsService := services.NewStatsService(dbConn, dbConn, cleanup, rdb)

	roomH := handlers.NewRoomHandler(roomService, hub)
	messageH := handlers.NewMessageHandler(chatService, roomService, userService)
	userH := handlers.NewUserHandler(userService)
	capacityH := handlers.NewCapacityHandler(statsService, cleanup)
	uploadH := handlers.NewUploadHandler(objectStore)
	wsH := handlers.NewWebSocketHandler(hub, handlers.NewWSMessageHandler(chatService, userService))

	router := gin.Default()
	APIEndpoints(router, roomH, messageH, userH, capacityH, uploadH, wsH)

	return &Server{
		Router:      router,
		DB:          dbConn,
		Redis:       rdb,
		Hub:         hub,
		Cleanup:     cleanup,
		stopCleanup: stopCleanup,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

func (s *Server) Shutdown() {
	s.stopCleanup()
	s.Hub.Stop()
}

func cleanupCheckPeriod() time.Duration {
	raw := os.Getenv("CLEANUP_CHECK_PERIOD_SECONDS")
	if raw == "" {
		return services.DefaultCheckPeriod
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Printf("invalid CLEANUP_CHECK_PERIOD_SECONDS %q, using default", raw)
		return services.DefaultCheckPeriod
	}

	return time.Duration(seconds) * time.Second
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
