package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Cloudinary (photo storage).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	StorageContainer    string `mapstructure:"STORAGE_CONTAINER"`

	// SendGrid (transactional email).
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFrom   string `mapstructure:"SENDGRID_FROM"`
	NotifyEmail    string `mapstructure:"NOTIFY_EMAIL"`
	ContactEmail   string `mapstructure:"CONTACT_EMAIL"`

	// PayFast (payment gateway).
	PayfastMerchantID  string `mapstructure:"PAYFAST_MERCHANT_ID"`
	PayfastMerchantKey string `mapstructure:"PAYFAST_MERCHANT_KEY"`
	PayfastPassphrase  string `mapstructure:"PAYFAST_PASSPHRASE"`
	PayfastValidateURL string `mapstructure:"PAYFAST_VALIDATE_URL"`
	PayfastIPWhitelist string `mapstructure:"PAYFAST_IP_WHITELIST"`
	PayfastSandbox     bool   `mapstructure:"PAYFAST_SANDBOX"`
	PayfastReturnURL   string `mapstructure:"PAYFAST_RETURN_URL"`
	PayfastCancelURL   string `mapstructure:"PAYFAST_CANCEL_URL"`
	PayfastNotifyURL   string `mapstructure:"PAYFAST_NOTIFY_URL"`

	// Magic / admin links.
	MagicLinkBaseURL  string `mapstructure:"MAGIC_LINK_BASE_URL"`
	AdminLinkBaseURL  string `mapstructure:"ADMIN_LINK_BASE_URL"`
	MagicLinkTTLHours int    `mapstructure:"MAGIC_LINK_TTL_HOURS"`
	AdminEmails       string `mapstructure:"ADMIN_EMAILS"`
	AdminUploadKey    string `mapstructure:"ADMIN_UPLOAD_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "kleanzilla")
	viper.SetDefault("STORAGE_CONTAINER", "kleanzilla")
	viper.SetDefault("MAGIC_LINK_TTL_HOURS", 168)
	viper.SetDefault("MAGIC_LINK_BASE_URL", "https://www.kleanzilla.co.za")
	viper.SetDefault("PAYFAST_RETURN_URL", "https://www.kleanzilla.co.za/book-a-clean.html?paid=1")
	viper.SetDefault("PAYFAST_CANCEL_URL", "https://www.kleanzilla.co.za/book-a-clean.html?pay=cancelled")
	viper.SetDefault("CONTACT_EMAIL", "zillaklean@gmail.com")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AdminEmailList returns the admin allow-list, lower-cased and trimmed.
func AdminEmailList() []string {
	fields := strings.FieldsFunc(AppConfig.AdminEmails, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// PayfastIPList returns the ITN source IP allow-list.
func PayfastIPList() []string {
	parts := strings.Split(AppConfig.PayfastIPWhitelist, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
