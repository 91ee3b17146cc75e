package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the app configuration. It is loaded once on startup.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		Port                      int
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string

		AppName   string
		SecretKey string

		// DataDir is where the file-backed store keeps its documents.
		DataDir string
		// DatabaseURL switches the store to the Postgres backend when set.
		DatabaseURL string

		RollbarToken string

		// WhatsAppGatewayURL is the base URL absence notifications are sent through.
		WhatsAppGatewayURL string

		Server ServerConfig
	}
)

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Academia")
	v.SetDefault("secretKey", "h2m$7c&=yx)9d+4qk_u#!vf(z51*ow@e8gj0s3b-pn6la%rti^")
	v.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	v.SetDefault("databaseUrl", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("whatsAppGatewayUrl", "https://wa.me")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:              v.GetBool("debug"),
		TestMode:           v.GetBool("testMode"),
		Env:                env,
		Build:              v.GetString("build"),
		AppName:            v.GetString("appName"),
		SecretKey:          v.GetString("secretKey"),
		DataDir:            v.GetString("dataDir"),
		DatabaseURL:        v.GetString("databaseUrl"),
		RollbarToken:       v.GetString("rollbarToken"),
		WhatsAppGatewayURL: v.GetString("whatsAppGatewayUrl"),
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			Port:                      v.GetInt("serverPort"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
	}
}
