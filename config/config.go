package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel int    `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    APIServerConfigs    `toml:"api_server"`
	Auth         AuthConfigs         `toml:"auth"`
	Storage      S3Configs           `toml:"storage"`
	File         FileConfigs         `toml:"file"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Notification NotificationConfigs `toml:"notification"`
	SearchServer SearchServerConfigs `toml:"search_server"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	DefaultLimit int      `toml:"default_limit"`
	MaxLimit     int      `toml:"max_limit"`
	AllowCORS    []string `toml:"allow_cors"`
}

type AuthConfigs struct {
	TokenSecret  string       `toml:"token_secret"`
	AccessToken  TokenConfigs `toml:"access_token"`
	RefreshToken TokenConfigs `toml:"refresh_token"`
}

type TokenConfigs struct {
	Name       string   `toml:"name"`
	Expiration Duration `toml:"expiration"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type FileConfigs struct {
	// MaxSize is the upload limit in bytes.
	MaxSize     int64  `toml:"max_size"`
	ImageBucket string `toml:"image_bucket"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

type NotificationConfigs struct {
	// BroadcastTopic is the topic notification events are published to so
	// every api instance can deliver them to its own websocket sessions.
	// Broadcasting is disabled when the topic is empty.
	BroadcastTopic string `toml:"broadcast_topic"`
}

type SearchServerConfigs struct {
	// IndexDir is where bleve keeps its index files. An empty value keeps
	// the index in memory only.
	IndexDir string `toml:"index_dir"`
}

// Duration decodes from a toml string like "15m" or "168h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = parsed
	return nil
}
