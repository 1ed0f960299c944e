package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "boardinghouse.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultResetTTL     = "10m"
	defaultVNPPayURL    = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	defaultVNPReturnURL = "http://localhost:8080/api/v1/payments/vnpay-return"
	defaultVNPAPIURL    = "https://sandbox.vnpayment.vn/merchant_webapi/api/transaction"
	defaultSMTPHost     = "localhost"
	defaultSMTPPort     = "1025"
	defaultFromName     = "Boarding House System"
)

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
	APIURL     string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // "", "starttls" or "tls"
	SkipVerifyTLS bool
	FromAddr      string
	FromName      string
}

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	ResetTTL    time.Duration
	// ResetBaseURL is the front-end page the password-reset token is appended to.
	ResetBaseURL string
	VNPay       VNPayConfig
	SMTP        SMTPConfig
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResetTTL, err = parseDurationEnv("PASSWORD_RESET_TTL", defaultResetTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResetBaseURL = getEnv("PASSWORD_RESET_URL", "http://localhost:3000/reset-password")

	cfg.VNPay = VNPayConfig{
		TmnCode:    strings.TrimSpace(os.Getenv("VNP_TMN_CODE")),
		HashSecret: strings.TrimSpace(os.Getenv("VNP_HASH_SECRET")),
		PayURL:     getEnv("VNP_URL", defaultVNPPayURL),
		ReturnURL:  getEnv("VNP_RETURN_URL", defaultVNPReturnURL),
		APIURL:     getEnv("VNP_API_URL", defaultVNPAPIURL),
	}

	cfg.SMTP = SMTPConfig{
		Host:          getEnv("SMTP_HOST", defaultSMTPHost),
		Port:          getEnv("SMTP_PORT", defaultSMTPPort),
		User:          os.Getenv("SMTP_USER"),
		Pass:          os.Getenv("SMTP_PASS"),
		TLSMode:       strings.ToLower(strings.TrimSpace(os.Getenv("SMTP_TLS_MODE"))),
		SkipVerifyTLS: parseBoolEnv("SMTP_SKIP_VERIFY_TLS", "false"),
		FromAddr:      getEnv("SMTP_FROM_ADDR", "no-reply@localhost"),
		FromName:      getEnv("SMTP_FROM_NAME", defaultFromName),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.ResetTTL <= 0 {
		return fmt.Errorf("PASSWORD_RESET_TTL must be > 0")
	}
	switch cfg.SMTP.TLSMode {
	case "", "starttls", "tls":
	default:
		return fmt.Errorf("SMTP_TLS_MODE must be one of: starttls, tls, or empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.VNPay.TmnCode == "" || cfg.VNPay.HashSecret == "" {
			return fmt.Errorf("in prod/release VNP_TMN_CODE and VNP_HASH_SECRET must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
