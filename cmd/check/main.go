package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/theplug/theplug/internal/database"
)

func main() {
	godotenv.Load()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./theplug.db"
	}

	db, err := database.NewDB(dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	fmt.Println("🔍 Checking The Plug")
	fmt.Println("====================")

	if os.Getenv("GOOGLE_API_KEY") == "" {
		fmt.Println("⚠️  WARNING: GOOGLE_API_KEY is not set, chat analysis is disabled")
	} else {
		fmt.Println("✅ Gemini analysis configured")
	}
	fmt.Println()

	videoRepo := database.NewVideoRepository(db)
	questionRepo := database.NewQuestionRepository(db)

	videoCount, err := videoRepo.Count()
	if err != nil {
		log.Fatal("Failed to count videos:", err)
	}
	fmt.Printf("📹 Videos acquired: %d\n", videoCount)

	questionCount, err := questionRepo.Count()
	if err != nil {
		log.Fatal("Failed to count questions:", err)
	}
	fmt.Printf("💬 Questions answered: %d\n\n", questionCount)

	recent, err := questionRepo.Recent(5)
	if err != nil {
		log.Fatal("Failed to load recent questions:", err)
	}
	if len(recent) == 0 {
		fmt.Println("No questions asked yet")
		return
	}

	fmt.Println("Recent questions:")
	for _, qa := range recent {
		fmt.Printf("  [%s] %s\n", qa.AskedAt.Format("Jan 2 15:04"), truncate(qa.Question, 60))
		fmt.Printf("      → %s\n", truncate(qa.Answer, 80))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
