package config

import (
	"fmt"
	"os"
	"strconv"

	"rps_referee/internal/game"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Credential for the external natural-language agent. The referee core
	// never reads it; it is only carried so adapters can report its presence.
	GoogleAPIKey string

	Ruleset   game.Ruleset
	Rules     game.Rules
	BotPolicy game.Policy
	BotSeed   uint64
	SeedSet   bool

	AgentJWTSecret string
	AllowedOrigin  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ToolRateLimit  int
	ToolRateWindow int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, after merging a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        getenv("APP_PORT", "8080"),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		Ruleset:        game.Ruleset(getenv("RULESET", string(game.RulesetClassic))),
		BotPolicy:      game.Policy(getenv("BOT_POLICY", string(game.PolicyUniform))),
		AgentJWTSecret: os.Getenv("AGENT_JWT_SECRET"),
		AllowedOrigin:  os.Getenv("ALLOWED_ORIGIN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}

	var err error
	if cfg.Rules.RoundLimit, err = intEnv("ROUND_LIMIT", game.DefaultRules().RoundLimit); err != nil {
		return nil, err
	}
	if cfg.Rules.ScoreLimit, err = intEnv("SCORE_LIMIT", 0); err != nil {
		return nil, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}

	if v := os.Getenv("BOT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: BOT_SEED %q: %v", game.ErrInvalidConfig, v, err)
		}
		cfg.BotSeed = seed
		cfg.SeedSet = true
	}

	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// tool calls per client per window
	if cfg.ToolRateLimit, err = intEnv("TOOL_RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.ToolRateWindow, err = intEnv("TOOL_RATE_WINDOW_SECONDS", 60); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", game.ErrInvalidConfig, key, v)
	}
	return n, nil
}
