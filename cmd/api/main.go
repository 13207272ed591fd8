package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/udayteja27/apsona/internal/domain/sqlite"
	"github.com/udayteja27/apsona/internal/domain/sqlite/repository"
	handler2 "github.com/udayteja27/apsona/internal/http/handler"
	authmw "github.com/udayteja27/apsona/internal/http/middleware"
	"github.com/udayteja27/apsona/internal/service"
	"github.com/udayteja27/apsona/internal/service/jobs"
	"github.com/udayteja27/apsona/internal/utils"
	"github.com/udayteja27/apsona/internal/utils/uid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/apsona/prod/"

func main() {
	validate := validator.New()

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	if err := utils.InitTokenSigner(os.Getenv("JWT_SECRET")); err != nil {
		panic(err)
	}
	uid.Init(envInt("MACHINE_ID", 1))

	// Init SQLite
	db, err := sqlite.Init()
	if err != nil {
		panic(err)
	}

	// Gettings repos
	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate)
	noteService := service.NewNoteService(noteRepo)

	// Gettings handler
	noteRoutes := handler2.NewNoteDefault(noteService)
	userRoutes := handler2.NewUserDefault(userService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Daily purge of notes trashed longer than the retention window
	purger := jobs.NewTrashPurger(noteRepo, int(envInt("PURGE_HOUR", 3)))
	go purger.Start(ctx)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	requireAuth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{UserRepo: userRepo})

	// Users
	e.POST("/api/users", userRoutes.CreateUser)
	e.POST("/api/users/login", userRoutes.CreateLogin)

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes, requireAuth)
	e.GET("/api/notes/search", noteRoutes.SearchNotes, requireAuth)
	e.GET("/api/notes/archived", noteRoutes.GetArchivedNotes, requireAuth)
	e.GET("/api/notes/trashed", noteRoutes.GetTrashedNotes, requireAuth)
	e.GET("/api/notes/reminders", noteRoutes.GetReminders, requireAuth)
	e.GET("/api/notes/tags/:tag", noteRoutes.GetNotesByTag, requireAuth)
	e.POST("/api/notes", noteRoutes.CreateNote, requireAuth)
	e.PUT("/api/notes/:id", noteRoutes.UpdateNote, requireAuth)
	e.POST("/api/notes/:id/trash", noteRoutes.TrashNote, requireAuth)
	e.DELETE("/api/notes/trash", noteRoutes.EmptyTrash, requireAuth)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	go func() {
		if err := e.Start(":" + port()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "7070"
}

func envInt(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s value %q: %v", key, raw, err)
	}
	return val
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
