package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL             time.Duration `yaml:"jwt_ttl"`
	ThreadWindow       int           `yaml:"thread_window"`       // recent messages fetched per direction when listing threads; bounds unread counts
	NotificationWindow int           `yaml:"notification_window"` // recent notifications returned per listing
	MaxMessageLen      int           `yaml:"max_message_len"`     // runes kept after sanitizing direct message text
	MaxPostLen         int           `yaml:"max_post_len"`        // runes kept after sanitizing post/comment text
	FeedPageSize       int           `yaml:"feed_page_size"`      // posts per listing query
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (s *Config) applyDefaults() {
	if s.Public.JwtTTL == 0 {
		s.Public.JwtTTL = 7 * 24 * time.Hour
	}
	if s.Public.ThreadWindow == 0 {
		s.Public.ThreadWindow = 50
	}
	if s.Public.NotificationWindow == 0 {
		s.Public.NotificationWindow = 50
	}
	if s.Public.MaxMessageLen == 0 {
		s.Public.MaxMessageLen = 2000
	}
	if s.Public.MaxPostLen == 0 {
		s.Public.MaxPostLen = 10_000
	}
	if s.Public.FeedPageSize == 0 {
		s.Public.FeedPageSize = 10
	}
	if s.Public.LogLevel == "" {
		s.Public.LogLevel = "info"
	}
}
