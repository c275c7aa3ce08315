package constants

import "time"

const (
	AppName            = "finbits"
	Version            = "v0.3.0"
	DefaultKeyringUser = "api-token"
	DefaultStorePath   = "~/.config/finbits/completions.json"
	DefaultAPIURL      = "https://api.finbits.app"

	// TokenEnvVar overrides the keyring token when set, for headless use.
	TokenEnvVar = "FINBITS_TOKEN"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ReconcileInterval is how often displayed items are re-checked for
	// cooldown expiry while a list is on screen.
	ReconcileInterval = time.Minute

	// RequestTimeout bounds every call to the remote API.
	RequestTimeout = 15 * time.Second
)
