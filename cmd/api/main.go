package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/moodlifter-labs/moodlifter/internal/adapters/emotion"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/genius"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/langdetect"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/lastfm"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/reccobeats"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/rest"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/spotify"
	"github.com/moodlifter-labs/moodlifter/internal/adapters/sqlite"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
	"github.com/moodlifter-labs/moodlifter/internal/core/services"
	"github.com/moodlifter-labs/moodlifter/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// It's best practice to crash early if required config is missing.
	if err := godotenv.Load(); err != nil {
		log.Printf("DEBUG main: no .env file loaded: %v", err)
	}

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}
	lastfmKey := os.Getenv("LASTFM_API_KEY")
	if lastfmKey == "" {
		log.Fatal("FATAL: LASTFM_API_KEY environment variable is required")
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	dbPath := os.Getenv("MOODLIFTER_DB")
	if dbPath == "" {
		dbPath = "moodlifter.db"
	}
	history, err := sqlite.NewAdapter(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer history.Close()

	// -- Music Service Adapters
	spotifyClient := spotify.NewWithCredentials(context.Background(), clientID, clientSecret)
	lastfmClient := lastfm.NewClient(lastfmKey, os.Getenv("LASTFM_URL"))
	reccoClient := reccobeats.NewClient(nil, os.Getenv("RECCOBEATS_URL"))

	// -- Language Detection (lyrics check is optional)
	var lyrics ports.LyricsProvider
	if token := os.Getenv("GENIUS_ACCESS_TOKEN"); token != "" {
		lyrics = genius.NewClient(nil, os.Getenv("GENIUS_URL"), token)
	}
	english := services.NewEnglishChecker(spotifyClient, langdetect.New(), lyrics)

	// -- Emotion Classifier (optional; without it only explicit
	//    emotion distributions are accepted)
	var classifier ports.EmotionClassifier
	if apiURL := os.Getenv("EMOTION_API_URL"); apiURL != "" {
		classifier = emotion.NewClient(apiURL)
	}

	// 3. Initialize Core Logic (The Driver)
	// This is Dependency Injection in action.
	// We inject the specific adapters into the agnostic service.
	svc := services.NewRecommender(spotifyClient, lastfmClient, reccoClient, english)

	// 4. Initialize "Driving" Adapter (The Interface)
	// The HTTP handler talks to the Service.
	pool := worker.NewPool(spotifyClient, history, 100)
	pool.Start(2)
	defer pool.Stop()

	handler := rest.NewHandler(svc, classifier, history, pool)

	// 5. Start the Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("------------------------------------------------")
	log.Printf("🎶 MoodLifter API is running on http://localhost:%s", port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
