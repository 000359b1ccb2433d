package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"scenescribe/api"
	"scenescribe/intake"
	"scenescribe/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	projects := newProjectStore(ctx)

	// Optional async intake: the video backend can publish finished analyses
	// to Kafka instead of calling back over HTTP.
	if strings.EqualFold(os.Getenv("KAFKA_INTAKE"), "true") {
		consumer, err := intake.NewConsumer(intake.ConsumerConfig{
			Brokers: intake.BrokersFromEnv(),
			Handler: intake.NewResultHandler(projects),
		})
		if err != nil {
			log.Fatalf("kafka consumer: %v", err)
		}
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("kafka consumer start: %v", err)
		}
		defer consumer.Close()
	}

	r := api.NewRouter(projects)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/projects")
	log.Println("  GET    /api/projects/:name")
	log.Println("  PUT    /api/projects/:name")
	log.Println("  DELETE /api/projects/:name")
	log.Println("  POST   /api/projects/:name/scenes/{replace,text,delete,retime,insert,audio,import-srt}")
	log.Println("  GET    /api/projects/:name/export/{srt,talking-srt}")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newProjectStore prefers Redis when configured, falling back to process
// memory for local development.
func newProjectStore(ctx context.Context) store.ProjectStore {
	if os.Getenv("REDIS_ADDR") == "" {
		log.Println("REDIS_ADDR not set; using in-memory project store")
		return store.NewMemoryStore()
	}
	redisStore, err := store.NewRedisStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("redis store: %v", err)
	}
	return redisStore
}
