package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsilverman092/usau-rankings/internal/config"
	"github.com/jsilverman092/usau-rankings/internal/repository/csvfile"
	"github.com/jsilverman092/usau-rankings/internal/service/ingest"
	"github.com/jsilverman092/usau-rankings/internal/service/ladder"
	"github.com/jsilverman092/usau-rankings/internal/service/rating"
	"github.com/jsilverman092/usau-rankings/internal/service/refresh"
	transportHttp "github.com/jsilverman092/usau-rankings/internal/transport/http"
	"github.com/jsilverman092/usau-rankings/internal/transport/http/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// Games source: local CSV when configured, USAU endpoints otherwise.
	var source refresh.GamesSource
	if cfg.GamesFile != "" {
		log.Printf("Serving rankings from local games file %s", cfg.GamesFile)
		source = &refresh.FileSource{Store: csvfile.NewGameStore(), Path: cfg.GamesFile}
	} else {
		client := ingest.NewClient()
		client.APIURL = cfg.APIGamesURL
		client.HTMLURL = cfg.HTMLResultsURL
		source = &refresh.RemoteSource{Client: client, SeasonYear: cfg.SeasonYear, Division: cfg.Division}
	}

	solver := rating.NewSolver(rating.Options{
		ConvergenceThreshold:   cfg.ConvergenceThreshold,
		MaxIters:               cfg.MaxIters,
		BlowoutMinOtherResults: cfg.BlowoutMinOtherResults,
	})
	currentLadder := ladder.New()

	worker := refresh.NewWorker(source, solver, currentLadder, cfg.SeasonStart, cfg.SeasonEnd, cfg.RefreshInterval)
	worker.Start()

	rankingsHandler := transportHttp.NewRankingsHandler(currentLadder, worker)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/api/rankings", rankingsHandler.GetRankings)
	router.GET("/api/teams/:team", rankingsHandler.GetTeam)
	router.POST("/api/refresh", rankingsHandler.PostRefresh)
	router.GET("/healthz", rankingsHandler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
