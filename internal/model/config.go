package model

// Storage backend names accepted in GlobalConfig.Storage.Backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// GlobalConfig represents the user's Foxhole configuration.
// Stored at ~/.config/foxhole/config.toml
type GlobalConfig struct {
	LogLevel string        `toml:"log_level,omitempty"`
	Storage  StorageConfig `toml:"storage"`
	Server   ServerConfig  `toml:"server"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string       `toml:"backend,omitempty"`
	Dir     string       `toml:"dir,omitempty"` // file backend; empty means default data dir
	Redis   RedisConfig  `toml:"redis"`
	SQLite  SQLiteConfig `toml:"sqlite"`
	S3      S3Config     `toml:"s3"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr,omitempty"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db,omitempty"`
	Prefix   string `toml:"prefix,omitempty"`
}

// SQLiteConfig holds settings for the sqlite backend.
type SQLiteConfig struct {
	Path string `toml:"path,omitempty"`
}

// S3Config holds settings for the S3 (or MinIO) backend.
type S3Config struct {
	Endpoint     string `toml:"endpoint,omitempty"`
	Region       string `toml:"region,omitempty"`
	Bucket       string `toml:"bucket,omitempty"`
	AccessKey    string `toml:"access_key,omitempty"`
	SecretKey    string `toml:"secret_key,omitempty"`
	UsePathStyle bool   `toml:"use_path_style,omitempty"`
	Prefix       string `toml:"prefix,omitempty"`
}

// ServerConfig holds settings for `foxhole serve`.
type ServerConfig struct {
	Port int `toml:"port,omitempty"`
}

// BackendName returns the configured backend, defaulting to the file backend.
func (g *GlobalConfig) BackendName() string {
	if g == nil || g.Storage.Backend == "" {
		return BackendFile
	}
	return g.Storage.Backend
}

// Backends returns all supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis, BackendSQLite, BackendS3}
}
