package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"

	"gestion-formations/gate"
	"gestion-formations/internal/api"
	"gestion-formations/internal/config"
	"gestion-formations/internal/handlers"
	"gestion-formations/internal/store"
	"gestion-formations/session"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run session store migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// The session store is the only local persistence; everything else lives
	// behind the REST API.
	st, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	sessions := session.NewManager(st)

	// Every API call carries the bearer token of the session that triggered
	// it; anonymous requests (login, register) go out without one.
	client := api.New(cfg.APIBaseURL, api.WithTokenSource(func(ctx context.Context) string {
		if s, ok := session.FromContext(ctx); ok {
			return s.Token
		}
		return ""
	}))

	base := &handlers.Base{
		API:      client,
		Sessions: sessions,
		Gate:     gate.Default(),
	}
	appHandler := NewApp(base, st, cfg.Dev)

	protect := csrf.Protect(
		[]byte(cfg.CSRFKey),
		csrf.Secure(!cfg.Dev),
		csrf.Path("/"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(protect(appHandler)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (api=%s, dev=%v)", cfg.Server.Port, cfg.APIBaseURL, cfg.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
