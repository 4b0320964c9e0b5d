package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Speech  SpeechConfig  `yaml:"speech"`
	Server  ServerConfig  `yaml:"server"`
	CORS    CORSConfig    `yaml:"cors"`
	TUI     TUIConfig     `yaml:"tui"`
	Log     LogConfig     `yaml:"log"`
}

// BackendConfig points at the word-storage backend.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:8081"`
	Timeout time.Duration `yaml:"timeout"  env:"BACKEND_TIMEOUT"  env-default:"30s"`
}

// SpeechConfig holds text-to-speech settings. An empty URL disables speech.
type SpeechConfig struct {
	URL           string        `yaml:"url"            env:"SPEECH_URL"`
	Voice         string        `yaml:"voice"          env:"SPEECH_VOICE"          env-default:"en-US-AriaNeural"`
	Rate          string        `yaml:"rate"           env:"SPEECH_RATE"           env-default:"+0%"`
	Pitch         string        `yaml:"pitch"          env:"SPEECH_PITCH"          env-default:"+0Hz"`
	Preview       bool          `yaml:"preview"        env:"SPEECH_PREVIEW"        env-default:"false"`
	Timeout       time.Duration `yaml:"timeout"        env:"SPEECH_TIMEOUT"        env-default:"30s"`
	OutputDir     string        `yaml:"output_dir"     env:"SPEECH_OUTPUT_DIR"     env-default:"./clips"`
	PlayerCommand string        `yaml:"player_command" env:"SPEECH_PLAYER_COMMAND"`
}

// Enabled reports whether a speech endpoint is configured.
func (c SpeechConfig) Enabled() bool { return c.URL != "" }

// ServerConfig holds settings of the local web front-end.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// ActionsPerMinute throttles POST /actions/* per client host; 0 disables.
	ActionsPerMinute int `yaml:"actions_per_minute" env:"SERVER_ACTIONS_PER_MINUTE" env-default:"120"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// TUIConfig holds terminal front-end settings.
type TUIConfig struct {
	Mouse     bool `yaml:"mouse"      env:"TUI_MOUSE"      env-default:"true"`
	AltScreen bool `yaml:"alt_screen" env:"TUI_ALT_SCREEN" env-default:"true"`
	// Indent is the number of columns per tree level.
	Indent int `yaml:"indent" env:"TUI_INDENT" env-default:"2"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	// File receives logs while the terminal front-end owns the screen.
	File string `yaml:"file" env:"LOG_FILE" env-default:"wordtree.log"`
}

// Addr returns the listen address of the web front-end.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ParseList splits a comma-separated setting, trimming blanks and
// dropping empty items. An empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
