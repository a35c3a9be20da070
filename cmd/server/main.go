package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/theplug/theplug/internal/ai"
	"github.com/theplug/theplug/internal/api"
	"github.com/theplug/theplug/internal/config"
	"github.com/theplug/theplug/internal/database"
	"github.com/theplug/theplug/internal/session"
	"github.com/theplug/theplug/internal/storage"
	"github.com/theplug/theplug/internal/video"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	store, err := storage.NewLocalStorage(filepath.Join(cfg.DataDir, "videos"))
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	videoRepo := database.NewVideoRepository(db)
	questionRepo := database.NewQuestionRepository(db)

	var analyzer ai.Analyzer
	if cfg.GoogleAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), &ai.Config{
			APIKey:         cfg.GoogleAPIKey,
			Model:          cfg.GeminiModel,
			PollInterval:   cfg.PollInterval,
			ProcessTimeout: cfg.ProcessTimeout,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize Gemini analyzer: %v", err)
		} else {
			analyzer = gemini
		}
	} else {
		log.Printf("Video analysis not configured. Set GOOGLE_API_KEY to enable chat.")
	}

	app := &api.App{
		Storage:       store,
		Sessions:      session.NewManager(store),
		Downloader:    video.NewDownloader(store, cfg.MaxVideoSize, cfg.CloudMode),
		Analyzer:      analyzer,
		VideoRepo:     videoRepo,
		QuestionRepo:  questionRepo,
		MaxUploadSize: cfg.MaxUploadSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %d", cfg.Port)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Database path: %s", cfg.DBPath)
	log.Printf("Max upload size: %d bytes", cfg.MaxUploadSize)
	if cfg.CloudMode {
		log.Printf("Cloud mode: downloads capped at %d bytes, single strategy", cfg.MaxVideoSize)
	}

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), router); err != nil {
		log.Fatal(err)
	}
}
