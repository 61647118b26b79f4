package config

import (
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTLHours        int      `yaml:"jwt_ttl_hours"`
	BoardTTLDays       int      `yaml:"board_ttl_days"`        // unclaimed boards expire after this
	VerifiedTTLDays    int      `yaml:"verified_ttl_days"`     // trust window for one-time-code verification
	LoginCodeTTLMin    int      `yaml:"login_code_ttl_min"`    // lifetime of a pending 6-digit code
	LogLevel           string   `yaml:"log_level"`
	LogJSON            bool     `yaml:"log_json"`
	SecureCookies      bool     `yaml:"secure_cookies"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	MigrationsPath     string   `yaml:"migrations_path"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	Email  Email  `yaml:"email"`
	JwtKey string `yaml:"jwt_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLHours) * time.Hour
}

func (c *Config) BoardTTL() time.Duration {
	return time.Duration(c.Public.BoardTTLDays) * 24 * time.Hour
}

func (c *Config) VerifiedTTL() time.Duration {
	return time.Duration(c.Public.VerifiedTTLDays) * 24 * time.Hour
}

func (c *Config) LoginCodeTTL() time.Duration {
	return time.Duration(c.Public.LoginCodeTTLMin) * time.Minute
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	// Secrets may be referenced as ${ENV_VAR} in the yaml
	expanded := os.Expand(string(configFile), os.Getenv)

	if err := yaml.Unmarshal([]byte(expanded), output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	// .env is optional, real deployments set env vars directly
	_ = godotenv.Load()

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}

func (p *Public) applyDefaults() {
	if p.JwtTTLHours == 0 {
		p.JwtTTLHours = 24 * 7
	}
	if p.BoardTTLDays == 0 {
		p.BoardTTLDays = 30
	}
	if p.VerifiedTTLDays == 0 {
		p.VerifiedTTLDays = 30
	}
	if p.LoginCodeTTLMin == 0 {
		p.LoginCodeTTLMin = 10
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.MigrationsPath == "" {
		p.MigrationsPath = "migrations"
	}
}
