package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	FeedMemory = "memory"
	FeedRedis  = "redis"

	BlobFS = "fs"
	BlobS3 = "s3"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpPort       int      `yaml:"http_port"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	LogFile        string   `yaml:"log_file"` // optional, rotated; stdout is always written
	SecureCookies  bool     `yaml:"secure_cookies"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Storage string `yaml:"storage"` // postgres | memory
	Feed    string `yaml:"feed"`    // memory | redis
	Blob    string `yaml:"blob"`    // fs | s3

	MaxMessageLength   int      `yaml:"max_message_length"`   // runes
	MaxAttachmentSize  string   `yaml:"max_attachment_size"`  // e.g. "10 MB"
	AllowedMimeTypes   []string `yaml:"allowed_mime_types"`   // upload allow list
	FeedCapacity       int      `yaml:"feed_capacity"`        // notifications kept per recipient
	MembershipCacheTTL int      `yaml:"membership_cache_ttl"` // seconds

	MediaPath      string `yaml:"media_path"`       // fs blob root
	PublicFilesURL string `yaml:"public_files_url"` // prefix of URLs handed out for fs blobs
	S3             S3     `yaml:"s3"`

	maxAttachmentBytes int64
}

type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"` // base URL clients fetch objects from
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
	Migrate  bool   `yaml:"migrate"` // apply migrations/init.sql on startup
}

type Private struct {
	JwtKey      string `yaml:"jwt_key"`
	Pg          Pg     `yaml:"pg"`
	RedisURL    string `yaml:"redis_url"`
	S3SecretKey string `yaml:"s3_secret_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) MaxAttachmentBytes() int64 {
	return c.Public.maxAttachmentBytes
}

func (c *Config) MembershipCacheTTL() time.Duration {
	return time.Duration(c.Public.MembershipCacheTTL) * time.Second
}

// Default returns a config usable without any files: memory storage,
// memory feed and fs blobs under the OS temp dir.
func Default() *Config {
	cfg := &Config{
		Public: Public{
			HttpPort:           8080,
			LogLevel:           "info",
			Storage:            StorageMemory,
			Feed:               FeedMemory,
			Blob:               BlobFS,
			MaxMessageLength:   4000,
			MaxAttachmentSize:  "10 MB",
			AllowedMimeTypes:   []string{"image/jpeg", "image/png", "image/gif", "image/webp", "application/pdf", "text/plain"},
			FeedCapacity:       500,
			MembershipCacheTTL: 30,
			MediaPath:          filepath.Join(os.TempDir(), "huddle-media"),
			PublicFilesURL:     "http://localhost:8080/files",
		},
		Private: Private{JwtKey: "dev-only-key"},
	}
	if err := cfg.finalize(); err != nil {
		panic(err)
	}
	return cfg
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder on top of
// Default(). A .env file next to the yaml files (or in the working dir)
// may carry secrets, environment variables win over yaml.
func MustLoad(configFolder string) *Config {
	_ = godotenv.Load(filepath.Join(configFolder, ".env"))
	_ = godotenv.Load(".env")

	cfg := Default()
	mustLoadPath(filepath.Join(configFolder, "public.yaml"), &cfg.Public)
	mustLoadPath(filepath.Join(configFolder, "private.yaml"), &cfg.Private)
	applyEnv(cfg)

	if err := cfg.finalize(); err != nil {
		panic(err.Error())
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HUDDLE_JWT_KEY"); v != "" {
		cfg.Private.JwtKey = v
	}
	if v := os.Getenv("HUDDLE_PG_PASSWORD"); v != "" {
		cfg.Private.Pg.Password = v
	}
	if v := os.Getenv("HUDDLE_REDIS_URL"); v != "" {
		cfg.Private.RedisURL = v
	}
	if v := os.Getenv("HUDDLE_S3_SECRET_KEY"); v != "" {
		cfg.Private.S3SecretKey = v
	}
}

// finalize parses derived values and checks the fields every deployment needs.
func (c *Config) finalize() error {
	if strings.TrimSpace(c.Private.JwtKey) == "" {
		return fmt.Errorf("config: jwt_key is required")
	}
	size, err := humanize.ParseBytes(c.Public.MaxAttachmentSize)
	if err != nil {
		return fmt.Errorf("config: invalid max_attachment_size %q: %w", c.Public.MaxAttachmentSize, err)
	}
	c.Public.maxAttachmentBytes = int64(size)

	switch c.Public.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Public.Storage)
	}
	switch c.Public.Feed {
	case FeedMemory:
	case FeedRedis:
		if c.Private.RedisURL == "" {
			return fmt.Errorf("config: redis feed needs redis_url")
		}
	default:
		return fmt.Errorf("config: unknown feed %q", c.Public.Feed)
	}
	switch c.Public.Blob {
	case BlobFS:
	case BlobS3:
		if c.Public.S3.Endpoint == "" || c.Public.S3.Bucket == "" {
			return fmt.Errorf("config: s3 blob needs endpoint and bucket")
		}
	default:
		return fmt.Errorf("config: unknown blob store %q", c.Public.Blob)
	}
	if c.Public.MaxMessageLength <= 0 {
		return fmt.Errorf("config: max_message_length must be positive")
	}
	if c.Public.FeedCapacity <= 0 {
		return fmt.Errorf("config: feed_capacity must be positive")
	}
	return nil
}
