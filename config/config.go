package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	ServerPort         string        `mapstructure:"SERVER_PORT"`
	GinMode            string        `mapstructure:"GIN_MODE"`
	UploadRoot         string        `mapstructure:"UPLOAD_ROOT"`
	TemplatesDir       string        `mapstructure:"TEMPLATES_DIR"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	Gemini             GeminiConfig  `mapstructure:"GEMINI"`
}

// GeminiConfig holds the generative-text service configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"API_KEY"`
	Model  string `mapstructure:"MODEL"`
}

// LoadConfig loads configuration from environment variables and config.yaml
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("SERVER_PORT", ":3000")
	viper.SetDefault("GIN_MODE", "debug") // gin.DebugMode, gin.ReleaseMode, gin.TestMode
	viper.SetDefault("UPLOAD_ROOT", "./public")
	viper.SetDefault("TEMPLATES_DIR", "./templates")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("SHUTDOWN_TIMEOUT", "5s")
	viper.SetDefault("GEMINI.API_KEY", "")
	viper.SetDefault("GEMINI.MODEL", "gemini-2.0-flash")

	// Read from config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	// Override with environment variables (e.g., MEDSTUDY_SERVER_PORT)
	viper.SetEnvPrefix("MEDSTUDY")
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
