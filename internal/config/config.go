package config

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host        string   `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port        string   `env:"HTTP_PORT" env-default:"8080"`
	PublicURL   string   `env:"PUBLIC_URL" env-default:"http://localhost:3000"`
	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"http://localhost:3000" env-separator:","`
}

type GRPCServer struct {
	Port string `env:"GRPC_PORT" env-default:"9090"`
}

type RedisCache struct {
	Host     string `env:"REDIS_HOST" env-default:"redis"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:"shared"`
}

type Postgres struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-default:"admin"`
	Password string `env:"DB_PASSWORD" env-default:"shared"`
	DBName   string `env:"DB_NAME" env-default:"flickswipe"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host,
		p.Port,
		p.User,
		p.Password,
		p.DBName,
		p.SSLMode,
	)
}

type TMDB struct {
	APIKey   string        `env:"API_KEY"`
	BaseURL  string        `env:"TMDB_BASE_URL" env-default:"https://api.themoviedb.org/3"`
	ImageURL string        `env:"TMDB_IMAGE_URL" env-default:"https://image.tmdb.org/t/p/w500"`
	Timeout  time.Duration `env:"TMDB_TIMEOUT" env-default:"5s"`
	CacheTTL time.Duration `env:"TMDB_CACHE_TTL" env-default:"6h"`
}

type Game struct {
	RoundDuration time.Duration `env:"GAME_ROUND_DURATION" env-default:"60s"`
	PlaylistSize  int           `env:"GAME_PLAYLIST_SIZE" env-default:"10"`
	CleanupPeriod int           `env:"GAME_CLEANUP_PERIOD" env-default:"20"`
	LobbyTTL      time.Duration `env:"GAME_LOBBY_TTL" env-default:"30m"`
	FinishedTTL   time.Duration `env:"GAME_FINISHED_TTL" env-default:"24h"`
}

type S3 struct {
	Bucket      string        `env:"S3_BUCKET" env-default:"flickswipe-posters"`
	Prefix      string        `env:"S3_PREFIX" env-default:"poster/"`
	Endpoint    string        `env:"S3_ENDPOINT"`
	Region      string        `env:"AWS_REGION" env-default:"ru-central1"`
	AccessKeyID string        `env:"AWS_ACCESS_KEY_ID"`
	SecretKey   string        `env:"AWS_SECRET_ACCESS_KEY"`
	PresignTTL  time.Duration `env:"S3_PRESIGN_TTL" env-default:"1h"`
}

type Admin struct {
	Secret   string        `env:"ADMIN_SECRET" env-default:"shared"`
	TokenTTL time.Duration `env:"ADMIN_TOKEN_TTL" env-default:"10m"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

type Config struct {
	HTTP     HTTPServer
	GRPC     GRPCServer
	Redis    RedisCache
	Postgres Postgres
	TMDB     TMDB
	Game     Game
	S3       S3
	Admin    Admin
	Log      Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	cfg, err := FromEnvFile(*configPath)
	if err != nil {
		log.Fatalf("%s %v", logtag, err)
	}
	return cfg
}

// FromEnvFile loads path (or .env when path is empty) into the process
// environment and decodes the environment into a Config.
func FromEnvFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("err loading env from file %s: %w", path, err)
		}
		log.Printf("%s using env from : %s", logtag, path)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("err reading env: %w", err)
	}

	return &cfg, nil
}
