package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds process configuration. All secrets come from the environment;
// a .env file is honored for local development.
type Env struct {
	AppAddr string
	GinMode string

	VerifyToken    string
	WhatsAppToken  string
	WhatsAppPhone  string
	GoogleCreds    string
	SpreadsheetID  string
	SheetName      string
	VariantName    string
	AdminJWTSecret string
	AdminPassHash  string
	CORSOrigins    []string
}

// LoadEnv reads configuration and fails fast when a required secret is
// missing. Degrading into a no-op sheet writer hides broken deployments,
// so startup refuses instead.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	env := Env{
		AppAddr:        getenv("APP_ADDR", ":8080"),
		GinMode:        getenv("GIN_MODE", ""),
		VerifyToken:    getenv("VERIFY_TOKEN", ""),
		WhatsAppToken:  getenv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppPhone:  getenv("WHATSAPP_PHONE_ID", ""),
		GoogleCreds:    getenv("GOOGLE_CREDS_JSON", ""),
		SpreadsheetID:  getenv("SPREADSHEET_ID", ""),
		SheetName:      getenv("SHEET_NAME", "Bookings"),
		VariantName:    getenv("BOT_VARIANT", "tour"),
		AdminJWTSecret: getenv("ADMIN_JWT_SECRET", ""),
		AdminPassHash:  getenv("ADMIN_PASSWORD_HASH", ""),
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	var missing []string
	for name, val := range map[string]string{
		"VERIFY_TOKEN":          env.VerifyToken,
		"WHATSAPP_ACCESS_TOKEN": env.WhatsAppToken,
		"WHATSAPP_PHONE_ID":     env.WhatsAppPhone,
		"GOOGLE_CREDS_JSON":     env.GoogleCreds,
		"SPREADSHEET_ID":        env.SpreadsheetID,
	} {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Env{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if env.VariantName != VariantTour && env.VariantName != VariantCruise {
		return Env{}, fmt.Errorf("BOT_VARIANT must be %q or %q, got %q", VariantTour, VariantCruise, env.VariantName)
	}

	// A secret without a password hash would lock the dashboard: the
	// middleware demands tokens while the login route stays unmounted.
	if env.AdminJWTSecret != "" && env.AdminPassHash == "" {
		return Env{}, fmt.Errorf("ADMIN_JWT_SECRET is set but ADMIN_PASSWORD_HASH is empty")
	}

	return env, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
