package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"

	"auth-web-server/config"
	_ "auth-web-server/docs"
	"auth-web-server/internal/handler"
	"auth-web-server/internal/repository"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"
)

// @title Auth-web-server
// @version 1.0
// @description REST API аутентификации и управления учетными записями

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	privateKey, publicKey, err := config.LoadRSAKeys(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка загрузки ключевой пары: %v", err)
	}

	accessTTL, err := time.ParseDuration(cfg.JWT.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Ошибка парсинга access_token_ttl: %v", err)
	}
	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Ошибка парсинга refresh_token_ttl: %v", err)
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient, refreshTTL)

	tokenCodec := security.NewTokenCodec(privateKey, publicKey, cfg.JWT.Issuer, accessTTL, refreshTTL)
	hasher := security.NewPasswordHasher()
	gate := security.NewGate(tokenCodec, userRepo)

	authService := service.NewAuthenticationService(userRepo, sessionRepo, tokenCodec, hasher)
	userService := service.NewUserService(userRepo, hasher)

	authHandler := handler.NewAuthenticationHandler(authService, gate)
	userHandler := handler.NewUserHandler(userService, gate)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	setupRoutes(router, authHandler, userHandler)

	runServer(ctx, srv)
}

func setupRoutes(r chi.Router, authHandler *handler.AuthenticationHandler, userHandler *handler.UserHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.RegisterUser)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Delete("/logout", authHandler.Logout)

		r.Post("/change-password/{user_id}", userHandler.ChangePassword)
		r.Get("/user_info/{user_id}", userHandler.GetUser)
		r.Post("/update_user/{user_id}", userHandler.UpdateUser)
		r.Delete("/remove_user/{user_id}", userHandler.DeleteUser)

		r.Get("/users", userHandler.ListUsers)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
