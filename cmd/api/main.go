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

	"github.com/akashsahu54/symphony/internal/adapters/rest"
	"github.com/akashsahu54/symphony/internal/adapters/synth"
	"github.com/akashsahu54/symphony/internal/core/services"
	"github.com/akashsahu54/symphony/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// .env is optional; real env vars always win.
	_ = godotenv.Load()

	synthURL := os.Getenv("SYNTH_SERVICE_URL")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	debounce := services.DefaultDebounce
	if raw := os.Getenv("ANALYZE_DEBOUNCE_MS"); raw != "" {
		if parsed, err := time.ParseDuration(raw + "ms"); err == nil && parsed > 0 {
			debounce = parsed
		}
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// The synth service is a pure renderer: every timing and parameter
	// decision stays in the core.
	synthClient := synth.NewClient(synthURL)

	// 3. Initialize Core Logic (The Driver)
	engine := services.NewEngine(synthClient, logObserver{}, debounce)

	// 4. Background preview analysis
	pool := worker.NewPool(logObserver{}, 100)
	pool.Start(2)
	defer pool.Stop()

	// 5. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(engine, pool, synthClient)

	// 6. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎶 Symphony API is running on http://localhost:%s", port)
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
