// file: internal/server/server.go
// version: 1.4.0
// guid: 9d1e3f5a-7b8c-4d0e-8f2a-4b6c8d0e2f4a

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/school-finder/internal/config"
	"github.com/jdfalk/school-finder/internal/matcher"
	"github.com/jdfalk/school-finder/internal/metrics"
	"github.com/jdfalk/school-finder/internal/server/middleware"
	"github.com/jdfalk/school-finder/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// maxUploadBytes caps dataset uploads (a full state directory export is
// well under this).
const maxUploadBytes = 64 << 20

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	store      *store.Store
	search     *SearchService
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns the default listen configuration.
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Host:         "localhost",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new server instance around the given dataset store.
func NewServer(st *store.Store) *Server {
	router := gin.Default()

	// Set up middleware
	router.Use(corsMiddleware())
	if config.AppConfig.RateLimitPerMin > 0 {
		limiter := middleware.NewRateLimiter(config.AppConfig.RateLimitPerMin, config.AppConfig.RateLimitPerMin/4+1)
		router.Use(limiter.Middleware())
	}

	// Register metrics (idempotent)
	metrics.Register()
	metrics.SetDatasetRecords(st.Current().Len())

	server := &Server{
		router: router,
		store:  st,
		search: NewSearchService(
			st,
			matcher.WeightedScorer{},
			config.AppConfig.ScoreThreshold,
			config.AppConfig.MaxResults,
			config.AppConfig.VerifyURLTemplate,
			config.AppConfig.CacheTTL,
		),
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (both paths for compatibility)
	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	// API routes
	api := s.router.Group("/api/v1")
	{
		api.GET("/search", s.handleSearch)
		api.GET("/districts", s.handleDistricts)
		api.GET("/dataset", s.handleDatasetInfo)
		api.POST("/dataset/upload", s.handleDatasetUpload)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	info := s.store.Current().Info()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   Version,
		"dataset": gin.H{
			"version": info.Version,
			"records": info.Records,
			"source":  info.Source,
		},
	})
}

// handleSearch answers GET /api/v1/search?q=&district=&threshold=&limit=.
// An empty query is a client error ("no search performed"), distinct from
// a search that found nothing.
func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	district := c.DefaultQuery("district", store.AllDistricts)

	threshold := 0
	if v := c.Query("threshold"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil || t < 0 || t > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be an integer between 0 and 100"})
			return
		}
		threshold = t
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 || l > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 50"})
			return
		}
		limit = l
	}

	resp := s.search.Search(query, district, threshold, limit)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDistricts(c *gin.Context) {
	districts := s.store.Current().Districts()
	// Sentinel first, then the sorted district list
	out := make([]string, 0, len(districts)+1)
	out = append(out, store.AllDistricts)
	out = append(out, districts...)
	c.JSON(http.StatusOK, DistrictsResponse{Districts: out, Count: len(out)})
}

func (s *Server) handleDatasetInfo(c *gin.Context) {
	ds := s.store.Current()
	resp := DatasetResponse{Dataset: ds.Info(), Empty: ds.Empty()}
	if resp.Empty {
		resp.Message = "no dataset loaded; POST a CSV file to /api/v1/dataset/upload"
	}
	c.JSON(http.StatusOK, resp)
}

// handleDatasetUpload ingests a CSV upload with the same normalization as
// the file load and replaces the dataset wholesale.
func (s *Server) handleDatasetUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "uploaded file exceeds the 64MB limit"})
		return
	}

	ds := store.LoadReader(file, header.Filename)
	if ds.Empty() {
		// Keep serving the previous dataset rather than replacing it
		// with nothing.
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file contained no usable records"})
		return
	}

	s.store.Replace(ds)
	metrics.IncDatasetLoad("upload")
	metrics.SetDatasetRecords(ds.Len())

	c.JSON(http.StatusOK, DatasetResponse{Dataset: ds.Info()})
}

// ReloadFromFile re-reads the configured data file and swaps the dataset
// if the reload produced records. Used by the file watcher.
func (s *Server) ReloadFromFile(path string) {
	ds := store.Load(path)
	if ds.Empty() {
		log.Printf("[WARN] reload of %s produced no records; keeping current dataset", path)
		return
	}
	s.store.Replace(ds)
	metrics.IncDatasetLoad("watch")
	metrics.SetDatasetRecords(ds.Len())
}
