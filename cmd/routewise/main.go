package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"routewise/cfg"
	"routewise/internal/search"
	"routewise/pkg/amadeus"
	"routewise/pkg/cache"
	"routewise/pkg/idgen"
	"routewise/pkg/logger"
	"routewise/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           RouteWise Flight Search API
// @version         1.0
// @description     Flight-offer search across candidate dates and destinations.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// cache + ids
	// ============
	store := cache.NewStore()
	ids, err := idgen.NewSnowflakeGenerator(config.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	limiter := ratelimit.NewEndpointLimiter(ratelimit.Config{
		RequestsPerSecond: config.UpstreamRequestsPerSec,
		BurstSize:         config.UpstreamBurstSize,
	})
	tokens := amadeus.NewTokenProvider(httpClient, config.AmadeusConfig.BaseURL,
		config.AmadeusConfig.ClientID, config.AmadeusConfig.ClientSecret, store, limiter, zlogger)
	amadeusClient := amadeus.NewClient(httpClient, config.AmadeusConfig.BaseURL, limiter, zlogger)

	// ============
	// Internal Service
	// ============
	destinationTTL := time.Duration(config.DestinationCacheTTLHrs) * time.Hour
	offerTTL := time.Duration(config.OfferCacheTTLMinutes) * time.Minute
	searchSvc := search.NewService(tokens, amadeusClient, store, ids, destinationTTL, offerTTL, zlogger)
	searchHandler := search.NewHandler(searchSvc)

	// ============
	// HTTP
	// ============
	r := gin.Default()

	searchHandler.RegisterRoutes(r)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
