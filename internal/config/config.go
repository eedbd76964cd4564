package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/insuranceguard/insuranceguard/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Data       DataConfig       `validate:"required"`
	Dunning    DunningConfig    `validate:"required"`
	Webhook    WebhookConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// DataConfig locates the dataset snapshot file and its periodic backups.
type DataConfig struct {
	Path           string `validate:"required"`
	BackupDir      string
	BackupInterval time.Duration
}

// DunningConfig controls the reminder sweep.
type DunningConfig struct {
	SweepInterval time.Duration `validate:"required"`
}

// WebhookConfig holds the chat-platform webhook endpoints notifications are
// posted to. Empty URLs disable the respective channel.
type WebhookConfig struct {
	NotifyURL  string
	PayoutURL  string
	LogURL     string
	Timeout    time.Duration
	MaxRetries int
}

func NewConfig() (*Configuration, error) {
	// Load .env if present, ignore when missing
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/insuranceguard")

	v.SetEnvPrefix("INSURANCEGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("data.path", "./data/insurance_data.json")
	v.SetDefault("data.backupdir", "./data/backups")
	v.SetDefault("data.backupinterval", "24h")
	v.SetDefault("dunning.sweepinterval", "24h")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.maxretries", 3)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func (c Configuration) IsLocal() bool {
	return c.Deployment.Mode == types.ModeLocal
}

// GetDefaultConfig returns a default configuration for local development
// and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Data: DataConfig{
			Path:           "./data/insurance_data.json",
			BackupDir:      "./data/backups",
			BackupInterval: 24 * time.Hour,
		},
		Dunning: DunningConfig{SweepInterval: 24 * time.Hour},
		Webhook: WebhookConfig{Timeout: 10 * time.Second, MaxRetries: 3},
	}
}
