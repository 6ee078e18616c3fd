package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every runtime setting for the service. Values come from
// environment variables, with an optional .env file for development.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`

	// Dispatch channel settings.
	AWSRegion       string `mapstructure:"AWS_REGION"`
	SenderEmail     string `mapstructure:"SENDER_EMAIL"`
	ResponseBaseURL string `mapstructure:"RESPONSE_BASE_URL"`

	// Matching tunables. Speeds are km/h per transport mode.
	DrivingSpeedKmh    float64 `mapstructure:"DRIVING_SPEED_KMH"`
	TransitSpeedKmh    float64 `mapstructure:"TRANSIT_SPEED_KMH"`
	WalkingSpeedKmh    float64 `mapstructure:"WALKING_SPEED_KMH"`
	DwellMinutes       float64 `mapstructure:"DWELL_MINUTES"`
	OnRouteThresholdKm float64 `mapstructure:"ON_ROUTE_THRESHOLD_KM"`

	// Offer collection window in minutes when the client does not pick one.
	OfferWindowMinutes int `mapstructure:"OFFER_WINDOW_MINUTES"`
}

// LoadConfig reads configuration from the environment and an optional
// .env file in the given path.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:3000")
	viper.SetDefault("AWS_REGION", "ap-south-1")
	viper.SetDefault("RESPONSE_BASE_URL", "http://localhost:3000")
	viper.SetDefault("DRIVING_SPEED_KMH", 40.0)
	viper.SetDefault("TRANSIT_SPEED_KMH", 25.0)
	viper.SetDefault("WALKING_SPEED_KMH", 5.0)
	viper.SetDefault("DWELL_MINUTES", 5.0)
	viper.SetDefault("ON_ROUTE_THRESHOLD_KM", 0.5)
	viper.SetDefault("OFFER_WINDOW_MINUTES", 30)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("config: SENDER_EMAIL is required")
	}

	return cfg, nil
}
