package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type Config struct {
	AppEnv                 string
	AppPort                string
	AmadeusConfig          AmadeusConfig
	DestinationCacheTTLHrs int
	OfferCacheTTLMinutes   int
	UpstreamRequestsPerSec float64
	UpstreamBurstSize      int
	NodeID                 int64
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	amadeusBaseUrl := mustEnv("AMADEUS_BASE_URL", &errs)
	amadeusClientId := mustEnv("AMADEUS_CLIENT_ID", &errs)
	amadeusClientSecret := mustEnv("AMADEUS_CLIENT_SECRET", &errs)

	destinationTTLHrs := mustEnvInt("DESTINATION_CACHE_TTL_HOURS", &errs)
	offerTTLMinutes := mustEnvInt("OFFER_CACHE_TTL_MINUTES", &errs)

	upstreamRps := mustEnvFloat("UPSTREAM_REQUESTS_PER_SECOND", &errs)
	upstreamBurst := mustEnvInt("UPSTREAM_BURST_SIZE", &errs)
	nodeID := mustEnvInt("NODE_ID", &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		AmadeusConfig: AmadeusConfig{
			BaseURL:      amadeusBaseUrl,
			ClientID:     amadeusClientId,
			ClientSecret: amadeusClientSecret,
		},
		DestinationCacheTTLHrs: destinationTTLHrs,
		OfferCacheTTLMinutes:   offerTTLMinutes,
		UpstreamRequestsPerSec: upstreamRps,
		UpstreamBurstSize:      upstreamBurst,
		NodeID:                 int64(nodeID),
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func mustEnvInt(key string, errs *[]error) int {
	value := mustEnv(key, errs)
	parsed, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
	}
	return parsed
}

func mustEnvFloat(key string, errs *[]error) float64 {
	value := mustEnv(key, errs)
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
	}
	return parsed
}
