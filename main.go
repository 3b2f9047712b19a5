package main

import (
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/halchemylab/marketing-seo-meta-tag-analyzer/analyzer"
	"github.com/halchemylab/marketing-seo-meta-tag-analyzer/logging"
	"github.com/halchemylab/marketing-seo-meta-tag-analyzer/metrics"
	"github.com/halchemylab/marketing-seo-meta-tag-analyzer/middleware"
)

func loadEnv() {
	// .env.development wins for local development, then plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func main() {
	loadEnv()

	logger, err := logging.New(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(getEnv("GIN_MODE", gin.ReleaseMode))
	metrics.Init()

	seoAnalyzer, err := analyzer.New(getEnv("DATA_DIR", "data"), logger)
	if err != nil {
		logger.Fatal("failed to initialize analyzer", zap.Error(err))
	}

	if ttl, err := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "")); err == nil && ttl > 0 {
		seoAnalyzer.SetCacheTTL(time.Duration(ttl) * time.Minute)
	}

	rateLimiter := middleware.NewRateLimiter(
		getEnvAsFloat("RATE_LIMIT_PER_SECOND", 2),
		getEnvAsFloat("RATE_LIMIT_BURST", 5),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Metrics())
	r.Use(rateLimiter.RateLimit())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", analyzeHandler(seoAnalyzer, logger))

		api.GET("/statistics", func(c *gin.Context) {
			current := seoAnalyzer.GetStats().GetCurrentStats()
			c.JSON(http.StatusOK, gin.H{
				"analyses":            current.Analyses,
				"fetchErrors":         current.FetchErrors,
				"cacheHits":           current.CacheHits,
				"cacheMisses":         current.CacheMisses,
				"averageFetchSeconds": current.AverageFetchSeconds(),
				"months":              seoAnalyzer.GetStats().GetAllMonths(),
			})
		})
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := getEnv("PORT", "8082")
	logger.Info("server starting", zap.String("port", port))

	go handleShutdown(seoAnalyzer, logger)

	if err := r.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func analyzeHandler(seoAnalyzer *analyzer.Analyzer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			URL string `json:"url" binding:"required,url"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
			return
		}

		cached := seoAnalyzer.IsCached(request.URL)
		start := time.Now()

		report, err := seoAnalyzer.Analyze(request.URL)
		if err != nil {
			metrics.AnalysesTotal.WithLabelValues("fetch_error").Inc()
			logger.Warn("analysis failed", zap.String("url", request.URL), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze URL: " + err.Error()})
			return
		}

		if cached {
			metrics.AnalysesTotal.WithLabelValues("cached").Inc()
		} else {
			metrics.AnalysesTotal.WithLabelValues("success").Inc()
			metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		}

		c.JSON(http.StatusOK, report)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func handleShutdown(seoAnalyzer *analyzer.Analyzer, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := seoAnalyzer.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	os.Exit(0)
}
