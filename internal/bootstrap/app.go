package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	googleauth "permits-backend/internal/auth"
	"permits-backend/internal/businesses"
	"permits-backend/internal/extraction"
	"permits-backend/internal/llm"
	"permits-backend/internal/llm/openai"
	"permits-backend/internal/lookups"
	"permits-backend/internal/permits"
	"permits-backend/internal/shared/config"
	"permits-backend/internal/shared/server"
	"permits-backend/internal/shared/storage/db"
	"permits-backend/internal/shared/storage/object"
	localstore "permits-backend/internal/shared/storage/object/local"
	s3store "permits-backend/internal/shared/storage/object/s3"
	"permits-backend/internal/uploads"
	"permits-backend/internal/users"
)

// App is the assembled application.
type App struct {
	Cfg    config.Config
	Router *gin.Engine
	DB     *sql.DB
}

// Build wires storage, repositories, services, and the HTTP router. Without a
// reachable database it falls back to in-memory repositories, which keeps
// local development and tests free of infrastructure.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB := connectDB(ctx, cfg)
	store, s3Client, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		userRepo   users.Repo
		lookupRepo lookups.Repo
		bizRepo    businesses.Repo
		permitRepo permits.Repo
	)
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		lookupRepo = &lookups.PGRepo{DB: sqlDB}
		bizRepo = &businesses.PGRepo{DB: sqlDB}
		permitRepo = &permits.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
		lookupRepo = lookups.NewMemoryRepo()
		bizRepo = businesses.NewMemoryRepo()
		permitRepo = permits.NewMemoryRepo()
	}

	usersSvc := users.NewService(userRepo)
	bizSvc := &businesses.Service{Repo: bizRepo, Lookups: lookupRepo, Purger: permitRepo}
	permitSvc := &permits.Service{Repo: permitRepo, Businesses: bizRepo, Lookups: lookupRepo, Store: store}
	extractionSvc := &extraction.Service{Store: store, LLM: buildLLM(cfg)}

	deps := server.Deps{
		Users:      users.NewHandler(usersSvc),
		Businesses: businesses.NewHandler(bizSvc),
		Permits:    permits.NewHandler(permitSvc),
		Extraction: extraction.NewHandler(extractionSvc),
		Uploads:    uploads.NewHandler(s3Client, cfg.StorageBucket),
		GoogleAuth: googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, usersSvc),
	}

	return &App{
		Cfg:    cfg,
		Router: server.NewRouter(cfg, deps),
		DB:     sqlDB,
	}, nil
}

func connectDB(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, *awss3.Client, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.StorageBucket)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Client(), nil
	}
	return localstore.New(cfg.LocalStoreDir, cfg.StorageBucket), nil, nil
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.LLMProvider == "openai" {
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		client, err := openai.NewClient(apiKey, cfg.LLMModel)
		if err == nil {
			return client
		}
		log.Printf("openai client unavailable, using placeholder: %v", err)
	}
	return llm.PlaceholderClient{}
}
