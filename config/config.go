package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Api      Api      `toml:"api" mapstructure:"api" json:"api"`
	Log      Log      `toml:"log" mapstructure:"log" json:"log"`
	DB       DB       `toml:"db" mapstructure:"db" json:"db"`
	Redis    Redis    `toml:"redis" mapstructure:"redis" json:"redis"`
	Ledger   Ledger   `toml:"ledger" mapstructure:"ledger" json:"ledger"`
	Treasury Treasury `toml:"treasury" mapstructure:"treasury" json:"treasury"`
	Monitor  Monitor  `toml:"monitor" mapstructure:"monitor" json:"monitor"`
}

type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"`
}

type Log struct {
	Path       string `toml:"path" mapstructure:"path" json:"path"`
	Level      string `toml:"level" mapstructure:"level" json:"level"`
	MaxSize    int    `toml:"max_size" mapstructure:"max_size" json:"max_size"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int    `toml:"max_age" mapstructure:"max_age" json:"max_age"`
}

type DB struct {
	DSN          string `toml:"dsn" mapstructure:"dsn" json:"dsn"`
	MaxIdleConns int    `toml:"max_idle_conns" mapstructure:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns int    `toml:"max_open_conns" mapstructure:"max_open_conns" json:"max_open_conns"`
}

type Redis struct {
	Enabled  bool   `toml:"enabled" mapstructure:"enabled" json:"enabled"`
	Addr     string `toml:"addr" mapstructure:"addr" json:"addr"`
	Password string `toml:"password" mapstructure:"password" json:"password"`
	DB       int    `toml:"db" mapstructure:"db" json:"db"`
}

// Ledger holds the two privileged addresses. The owner rotates the agent,
// the agent verifies check-ins and triggers distributions.
type Ledger struct {
	Owner string `toml:"owner" mapstructure:"owner" json:"owner"`
	Agent string `toml:"agent" mapstructure:"agent" json:"agent"`
}

type Treasury struct {
	Enabled         bool   `toml:"enabled" mapstructure:"enabled" json:"enabled"`
	RPCEndpoint     string `toml:"rpc_endpoint" mapstructure:"rpc_endpoint" json:"rpc_endpoint"`
	ContractAddress string `toml:"contract_address" mapstructure:"contract_address" json:"contract_address"`
	PrivateKey      string `toml:"private_key" mapstructure:"private_key" json:"private_key"`
	ChainID         int64  `toml:"chain_id" mapstructure:"chain_id" json:"chain_id"`
	GasPrice        int64  `toml:"gas_price" mapstructure:"gas_price" json:"gas_price"`
}

type Monitor struct {
	Enabled      bool  `toml:"enabled" mapstructure:"enabled" json:"enabled"`
	IntervalSecs int64 `toml:"interval_secs" mapstructure:"interval_secs" json:"interval_secs"`
}

func UnmarshalConfig(configFilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if c.Api.Port == "" {
		return nil, errors.New("api.port is required")
	}
	if c.Ledger.Owner == "" || c.Ledger.Agent == "" {
		return nil, errors.New("ledger.owner and ledger.agent are required")
	}
	if c.Monitor.IntervalSecs <= 0 {
		c.Monitor.IntervalSecs = 60
	}
	return c, nil
}
