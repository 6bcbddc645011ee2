package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration sourced from the environment.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration

	DatabaseURL string
	RedisAddr   string

	AdminAccount  string
	AdminPassword string

	KakaoAPIURL   string
	KakaoUser     string
	KakaoPassword string
	SMSAPIURL     string
	SMSUser       string
	SMSPassword   string

	KafkaBrokers string
	AuditTopic   string

	DispatchDelay    time.Duration
	DispatchDeadline time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Defaults suit local development and must be overridden in production.
func FromEnv() Server {
	return Server{
		Addr:          envOr("MEMBER_GATEWAY_ADDR", ":8080"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("JWT_ISSUER", "member-gateway"),
		TokenTTL:      envDurationOr("JWT_TTL", 24*time.Hour),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		AdminAccount:  envOr("ADMIN_ACCOUNT", "admin"),
		AdminPassword: envOr("ADMIN_PASSWORD", "1212"),

		KakaoAPIURL:   envOr("KAKAO_API_URL", "http://localhost:8081/kakaotalk-messages"),
		KakaoUser:     envOr("KAKAO_API_USER", "autoever"),
		KakaoPassword: envOr("KAKAO_API_PASSWORD", "1234"),
		SMSAPIURL:     envOr("SMS_API_URL", "http://localhost:8082/sms"),
		SMSUser:       envOr("SMS_API_USER", "autoever"),
		SMSPassword:   envOr("SMS_API_PASSWORD", "5678"),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		AuditTopic:   envOr("AUDIT_TOPIC", "member-gateway.audit"),

		DispatchDelay:    envDurationOr("DISPATCH_DELAY", 50*time.Millisecond),
		DispatchDeadline: envDurationOr("DISPATCH_DEADLINE", 10*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Plain integers are treated as seconds for operator convenience.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
