package main

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

	"github.com/slchatapp/backend/internal/config"
	"github.com/slchatapp/backend/internal/events"
	"github.com/slchatapp/backend/internal/httpserver"
	"github.com/slchatapp/backend/internal/logging"
	"github.com/slchatapp/backend/internal/repo"
	"github.com/slchatapp/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(cfg.KAFKA_ADDRESS, "user_events")
		defer producer.Close()
	}

	secret := []byte(cfg.JWT_SECRET)
	store := repo.New(db)

	sessionSvc := &service.SessionService{Repo: store, Secret: secret}
	accountSvc := &service.AccountService{Repo: store, Sessions: sessionSvc, Secret: secret, Producer: producer}
	conversationSvc := &service.ConversationService{Repo: store}
	messageSvc := &service.MessageService{Repo: store, Conversations: conversationSvc}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), logger)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:         &httpserver.AuthHTTP{Svc: accountSvc},
		ConversationHandler: &httpserver.ConversationHTTP{Svc: conversationSvc},
		MessageHandler:      &httpserver.MessageHTTP{Svc: messageSvc},
		JWTSecret:           secret,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP_ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
