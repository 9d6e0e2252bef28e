package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"PORT" env-default:"3001"`
	Rooms     Rooms     `yaml:"rooms"`
	WebSocket WebSocket `yaml:"websocket"`
	Redis     Redis     `yaml:"redis"`
	CORS      CORS      `yaml:"cors"`
}

type Rooms struct {
	CodeLength     int           `yaml:"code-length" env:"ROOM_CODE_LENGTH" env-default:"6"`
	SweepInterval  time.Duration `yaml:"sweep-interval" env:"ROOM_SWEEP_INTERVAL" env-default:"5m"`
	EmptyRetention time.Duration `yaml:"empty-retention" env:"ROOM_EMPTY_RETENTION" env-default:"1h"`
}

type WebSocket struct {
	PingInterval   time.Duration `yaml:"ping-interval" env:"WS_PING_INTERVAL" env-default:"30s"`
	ReadTimeout    time.Duration `yaml:"read-timeout" env:"WS_READ_TIMEOUT" env-default:"60s"`
	WriteTimeout   time.Duration `yaml:"write-timeout" env:"WS_WRITE_TIMEOUT" env-default:"10s"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"WS_MAX_MESSAGE_SIZE" env-default:"4096"`
	SendBuffer     int           `yaml:"send-buffer" env:"WS_SEND_BUFFER" env-default:"64"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

var (
	ErrInvalidCodeLength = errors.New("room code length must be positive")
	ErrInvalidInterval   = errors.New("interval must be positive")
	ErrInvalidTimeouts   = errors.New("websocket ping interval must be shorter than read timeout")
	ErrInvalidLimits     = errors.New("websocket message size and send buffer must be positive")
)

// MustLoad - load configuration from the yml file at path, falling back to environment only when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Rooms.CodeLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCodeLength, that.Rooms.CodeLength)
	}

	if that.Rooms.SweepInterval <= 0 || that.Rooms.EmptyRetention <= 0 {
		return fmt.Errorf("%w: rooms", ErrInvalidInterval)
	}

	if that.WebSocket.PingInterval <= 0 || that.WebSocket.ReadTimeout <= 0 || that.WebSocket.WriteTimeout <= 0 {
		return fmt.Errorf("%w: websocket", ErrInvalidInterval)
	}

	if that.WebSocket.PingInterval >= that.WebSocket.ReadTimeout {
		return ErrInvalidTimeouts
	}

	if that.WebSocket.MaxMessageSize <= 0 || that.WebSocket.SendBuffer <= 0 {
		return ErrInvalidLimits
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
