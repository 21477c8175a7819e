// file: internal/config/config.go
// version: 1.1.0
// guid: 2c4d6e8f-0a1b-4c3d-8e5f-6a7b8c9d0e1f

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DataFile          string
	ScoreThreshold    int
	MaxResults        int
	VerifyURLTemplate string
	RateLimitPerMin   int
	CacheTTL          time.Duration
	WatchDataFile     bool
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("data_file", "karnataka_schools.csv")
	viper.SetDefault("score_threshold", 75)
	viper.SetDefault("max_results", 5)
	viper.SetDefault("verify_url_template", "https://udiseplus.gov.in/school/SchoolDirectory?udisecode=%s")
	viper.SetDefault("rate_limit_per_minute", 120)
	viper.SetDefault("cache_ttl", "30s")
	viper.SetDefault("watch_data_file", false)

	AppConfig = Config{
		DataFile:          viper.GetString("data_file"),
		ScoreThreshold:    viper.GetInt("score_threshold"),
		MaxResults:        viper.GetInt("max_results"),
		VerifyURLTemplate: viper.GetString("verify_url_template"),
		RateLimitPerMin:   viper.GetInt("rate_limit_per_minute"),
		CacheTTL:          viper.GetDuration("cache_ttl"),
		WatchDataFile:     viper.GetBool("watch_data_file"),
	}

	// Clamp ranking parameters to sane bounds
	if AppConfig.ScoreThreshold < 0 {
		AppConfig.ScoreThreshold = 0
	}
	if AppConfig.ScoreThreshold > 100 {
		AppConfig.ScoreThreshold = 100
	}
	if AppConfig.MaxResults < 1 {
		AppConfig.MaxResults = 5
	}
	if AppConfig.CacheTTL <= 0 {
		AppConfig.CacheTTL = 30 * time.Second
	}
}
