package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Invoice  InvoiceConfig
	Void     VoidConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	APIKey  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// InvoiceConfig drives the invoice builder.
type InvoiceConfig struct {
	// FallbackItemID is billed when a line has no catalog match.
	FallbackItemID string
	// VariableItemKeyword marks variable-priced products (charters) whose
	// passenger counts feed the subtotal-mismatch fallback.
	VariableItemKeyword string
	TaxCode             string
	ClassRef            string
}

// VoidConfig gates the invoice-void dispatcher.
type VoidConfig struct {
	Enabled      bool
	WebhookURL   string
	DelaySeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("INVOICE_FALLBACK_ITEM_ID", "1")
	viper.SetDefault("INVOICE_VARIABLE_ITEM_KEYWORD", "charter")
	viper.SetDefault("INVOICE_TAX_CODE", "TAX")
	viper.SetDefault("ENABLE_VOID_FEATURE", false)
	viper.SetDefault("VOID_DELAY_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			APIKey:  viper.GetString("API_KEY"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Invoice: InvoiceConfig{
			FallbackItemID:      viper.GetString("INVOICE_FALLBACK_ITEM_ID"),
			VariableItemKeyword: viper.GetString("INVOICE_VARIABLE_ITEM_KEYWORD"),
			TaxCode:             viper.GetString("INVOICE_TAX_CODE"),
			ClassRef:            viper.GetString("INVOICE_CLASS_REF"),
		},
		Void: VoidConfig{
			Enabled:      viper.GetBool("ENABLE_VOID_FEATURE"),
			WebhookURL:   viper.GetString("WEBHOOK_URL"),
			DelaySeconds: viper.GetInt("VOID_DELAY_SECONDS"),
		},
	}

	return config, nil
}
