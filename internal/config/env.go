package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr           string
	GinMode           string
	DBDSN             string
	JWTSecret         string
	StripeSecretKey   string
	PaymentSuccessURL string
	PaymentCancelURL  string
	RedisAddr         string
	RedisPassword     string
	CORSOrigins       []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":3000"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/ticket_point?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	successURL := strings.TrimSpace(os.Getenv("PAYMENT_SUCCESS_URL"))
	if successURL == "" {
		successURL = "http://localhost:5173/payment-success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := strings.TrimSpace(os.Getenv("PAYMENT_CANCEL_URL"))
	if cancelURL == "" {
		cancelURL = "http://localhost:5173/dashboard/my-bookings"
	}

	origins := []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = origins[:0]
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:           appAddr,
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:             dsn,
		JWTSecret:         secret,
		StripeSecretKey:   strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		PaymentSuccessURL: successURL,
		PaymentCancelURL:  cancelURL,
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		CORSOrigins:       origins,
	}
}
