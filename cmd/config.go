package cmd

import (
	"errors"
	"io/fs"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds configuration values for commands.
type Config struct {
	Address         string        `env:"ADDRESS" env-default:"0.0.0.0" env-description:"address to listen on"`
	Port            string        `env:"PORT" env-default:"9095" env-description:"port to listen on"`
	ProxyProtocol   bool          `env:"PROXY_PROTOCOL" env-default:"false" env-description:"accept PROXY protocol headers on incoming connections"`
	Sequential      bool          `env:"SEQUENTIAL" env-default:"false" env-description:"serve one connection at a time"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" env-default:"10s" env-description:"timeout for connecting to upstream servers"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"30s" env-description:"timeout for each exchange with an upstream server"`
	CheckTimeout    time.Duration `env:"CHECK_TIMEOUT" env-default:"500ms" env-description:"timeout for the healthcheck command"`
	DNS             dnsConfig
	Journal         journalConfig
}

type dnsConfig struct {
	Server  string        `env:"DNS_SERVER" env-description:"DNS server (host:port) used to resolve upstream servers, instead of the system resolver"`
	Timeout time.Duration `env:"DNS_TIMEOUT" env-default:"2s" env-description:"timeout for DNS queries"`
}

type journalConfig struct {
	RedisAddress  string `env:"REDIS_ADDR" env-description:"Redis server (host:port) used to record transactions, disabled if empty"`
	RedisPassword string `env:"REDIS_PASSWORD" env-description:"Redis password"`
	Key           string `env:"JOURNAL_KEY" env-default:"relay:journal" env-description:"Redis key of the transaction journal"`
	MaxLen        int64  `env:"JOURNAL_MAX_LEN" env-default:"10000" env-description:"maximum number of journal entries kept"`
}

// GetConfigFromEnvironment creates a Config object based on the shell
// environment, and the .env file in the working directory if there is one.
func GetConfigFromEnvironment() (*Config, error) {
	return LoadConfig(".env")
}

// LoadConfig creates a Config object based on the shell environment and the
// optional dotenv file at path. Variables already set in the environment take
// precedence over those in the file.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Usage returns a description of the environment variables read into Config.
func Usage() string {
	header := "Environment variables:"
	help, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return err.Error()
	}
	return help
}

// ListenAddress returns the address the relay listens on.
func (config *Config) ListenAddress() string {
	return net.JoinHostPort(config.Address, config.Port)
}
