package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/qualair/airquality-backend/internal/app"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		application.Log.Fatal("HTTP server exited", "error", err)
	}
}
