package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediahub/database"
	"mediahub/internal/config"
	"mediahub/internal/http-api/dto"
	"mediahub/internal/http-api/handler"
	"mediahub/internal/http-api/middleware"
	"mediahub/internal/http-api/repository"
	"mediahub/internal/http-api/service"
	"mediahub/internal/logger"
	"mediahub/internal/mailer"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, cleanup := logger.New(cfg.LogLevel, cfg.LogFormat == "json")
	defer cleanup()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	dto.RegisterTagNames()

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	codes := service.NewCodeIssuer(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	mail := mailer.NewSMTPMailer(cfg)
	authService := service.NewAuthService(userRepo, codes, mail, log, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	router := buildRouter(cfg, log, authService, userService, categoryService,
		genreService, titleService, reviewService, commentService)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.Int("port", cfg.HTTPPort), zap.String("env", cfg.GoEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func buildRouter(
	cfg *config.Config,
	log *zap.Logger,
	authService service.AuthService,
	userService service.UserService,
	categoryService service.CategoryService,
	genreService service.GenreService,
	titleService service.TitleService,
	reviewService service.ReviewService,
	commentService service.CommentService,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	authLimiter := middleware.RateLimitPerIP(rate.Limit(cfg.AuthRateRPS), cfg.AuthRateBurst)
	handler.NewAuthHandler(authService).RegisterRoutes(api, authLimiter)
	handler.NewUserHandler(userService).RegisterRoutes(api, authService)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api, authService)
	handler.NewGenreHandler(genreService).RegisterRoutes(api, authService)
	handler.NewTitleHandler(titleService).RegisterRoutes(api, authService)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, authService)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, authService)

	return router
}
