package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/theplug/theplug/internal/ai"
)

// Ask a single question about a local video file, without the web UI.
func main() {
	var (
		videoPath = flag.String("video", "", "Path to a local video file")
		question  = flag.String("q", "Summarize this video", "Question to ask")
		model     = flag.String("model", "", "Gemini model name override")
	)
	flag.Parse()

	if *videoPath == "" {
		log.Fatal("Please provide a video path with -video")
	}
	if _, err := os.Stat(*videoPath); err != nil {
		log.Fatal("Video file not accessible:", err)
	}

	godotenv.Load()

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		log.Fatal("GOOGLE_API_KEY is not set")
	}

	config := ai.NewConfig()
	config.APIKey = apiKey
	if *model != "" {
		config.Model = *model
	}

	ctx := context.Background()
	gemini, err := ai.NewGemini(ctx, config)
	if err != nil {
		log.Fatal("Failed to initialize Gemini:", err)
	}

	fmt.Printf("Analyzing %s...\n\n", *videoPath)

	answer, err := gemini.AskVideo(ctx, *videoPath, *question)
	if err != nil {
		log.Fatal("Analysis failed:", err)
	}

	fmt.Println(answer)
}
