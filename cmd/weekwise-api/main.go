package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/weekwise/weekwise-api/internal/adapters/http"
	"github.com/weekwise/weekwise-api/internal/adapters/llm"
	firestorestore "github.com/weekwise/weekwise-api/internal/adapters/storage/firestore"
	memstore "github.com/weekwise/weekwise-api/internal/adapters/storage/memory"
	sqlitestore "github.com/weekwise/weekwise-api/internal/adapters/storage/sqlite"
	"github.com/weekwise/weekwise-api/internal/app/analysis"
	"github.com/weekwise/weekwise-api/internal/app/history"
	"github.com/weekwise/weekwise-api/internal/app/planner"
	"github.com/weekwise/weekwise-api/internal/config"
	"github.com/weekwise/weekwise-api/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Text generation: mock for dev, Vertex otherwise.
	var (
		gen domain.TextGenerator
		err error
	)
	if cfg.UseMockLLM {
		log.Println("[LLM] Using mock text generator")
		gen = llm.NewMockGenerator()
	} else {
		log.Println("[LLM] Using Vertex text generator")
		gen, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Vertex client: %v", err)
		}
	}

	// Storage for analysis history.
	var store domain.AnalysisStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		defer fsStore.Close()
		store = fsStore

	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		sqlStore := sqlitestore.NewStore(cfg.SQLitePath)
		if err := sqlStore.Init(); err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer sqlStore.Close()
		store = sqlStore

	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewAnalysisStore()
	}

	analysisSvc := analysis.NewService(gen)
	plannerSvc := planner.NewService(gen)
	historySvc := history.NewService(store)

	handler := httpadapter.NewServer(analysisSvc, plannerSvc, historySvc)

	addr := ":" + cfg.Port
	log.Println("Weekwise API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
