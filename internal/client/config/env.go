package config

// EnvAPIURL overrides the API base URL.
const EnvAPIURL = "CODEPAD_API_URL"

func parseEnv(cfg *Config, getenv func(string) string) {
	setString(&cfg.APIBaseURL, getenv(EnvAPIURL))
}
