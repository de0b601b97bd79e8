package config

import "github.com/spf13/viper"

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress      string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn       string `mapstructure:"POSTGRES_CONN"`
	PostgresUser       string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass       string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost       string `mapstructure:"POSTGRES_HOST"`
	PostgresPort       string `mapstructure:"POSTGRES_PORT"`
	PostgresDB         string `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL       string `mapstructure:"MIGRATION_URL"`
	RequestTimeout     int    `mapstructure:"REQUEST_TIMEOUT"`
	AnalysisTimeout    int    `mapstructure:"ANALYSIS_TIMEOUT"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	GoogleMapsAPIKey   string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	GoogleMapsURL      string `mapstructure:"GOOGLE_MAPS_DIRECTIONS_URL"`
	DefaultSiteAddress string `mapstructure:"DEFAULT_SITE_ADDRESS"`
	ProcurementEmail   string `mapstructure:"PROCUREMENT_EMAIL"`
	NatsURL            string `mapstructure:"NATS_URL"`
	DeliveryReminder   string `mapstructure:"DELIVERY_REMINDER_CRON"`
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}
