package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newsjungle/newsjungle/app/api"
	"github.com/newsjungle/newsjungle/app/cache"
	"github.com/newsjungle/newsjungle/app/cfg"
	"github.com/newsjungle/newsjungle/app/config"
	"github.com/newsjungle/newsjungle/app/database"
	"github.com/newsjungle/newsjungle/app/enrich"
	"github.com/newsjungle/newsjungle/app/fetch"
	"github.com/newsjungle/newsjungle/app/pipeline"
	"github.com/newsjungle/newsjungle/app/relevance"
	"github.com/newsjungle/newsjungle/app/sources"
	"github.com/newsjungle/newsjungle/app/summarizer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting News Jungle server (version %s)...", appCfg.Version)

	// Database connection and schema
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Printf("Database ready (schema version %d, dirty: %v)", version, dirty)

	articleRepo := database.NewArticleRepository(db)
	summaryRepo := database.NewSummaryCacheRepository(db)

	// Optional Redis fetch cache
	var fetchCache *cache.Cache
	if appCfg.RedisAddr != "" {
		fetchCache, err = cache.NewCache(appCfg.RedisAddr)
		if err != nil {
			log.Printf("Warning: Redis unavailable, fetch caching disabled: %v", err)
			fetchCache = nil
		} else {
			defer fetchCache.Close()
			log.Printf("Connected to Redis fetch cache at %s", appCfg.RedisAddr)
		}
	}

	// Source registry
	loader := config.NewLoader(appCfg.SourcesFile)
	srcCfg, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load source configuration:", err)
	}
	registry := sources.NewRegistry(appCfg, srcCfg)
	log.Printf("Initialized %d source adapters (%d feed endpoints)", len(registry), len(srcCfg.Feeds))

	// Optional reasoning service
	var chatModel enrich.ChatModel
	if appCfg.LLMAPIKey != "" {
		chatModel, err = enrich.NewChatModel(context.Background(), appCfg.LLMBaseURL, appCfg.LLMAPIKey, appCfg.LLMModel)
		if err != nil {
			log.Printf("Warning: Reasoning service unavailable, enrichment disabled: %v", err)
			chatModel = nil
		} else {
			log.Printf("Reasoning service enabled (model %s)", appCfg.LLMModel)
		}
	} else {
		log.Printf("Reasoning service disabled (LLM_API_KEY not set)")
	}

	// Pipeline components
	orchestrator := fetch.NewOrchestrator(registry, fetchCache, appCfg.FetchWorkerCount,
		time.Duration(appCfg.SourceTimeout)*time.Second, appCfg.MaxRetries)

	var agent *enrich.SearchAgent
	var batcher *enrich.Batcher
	if chatModel != nil {
		agent = enrich.NewSearchAgent(chatModel)
		batcher = enrich.NewBatcher(chatModel, appCfg.EnrichWorkerCount)
	}

	newsPipeline := pipeline.NewPipeline(orchestrator, relevance.NewFilterer(), agent, batcher, articleRepo)
	topicSummarizer := summarizer.NewSummarizer(chatModel, summaryRepo)

	// HTTP server
	apiHandler := api.NewHandler(newsPipeline, topicSummarizer, articleRepo, len(registry), appCfg.Version)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Articles:      http://localhost:%s/articles?query=<terms>", appCfg.Port)
		log.Printf("  Summary:       http://localhost:%s/summary?topic=<topic>", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("News Jungle server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("News Jungle server shutdown complete")
}
