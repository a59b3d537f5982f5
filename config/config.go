package config

import (
	"os"

	"github.com/joripage/matchengine/pkg/feed"
	fixgateway "github.com/joripage/matchengine/pkg/gateway/fix"
	postgres_wrapper "github.com/joripage/matchengine/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/matchengine/pkg/infra/redis"
	"github.com/joripage/matchengine/pkg/report"
	"github.com/joripage/matchengine/pkg/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`
	Symbol      string `yaml:"symbol"`

	Fix     *fixgateway.Config               `yaml:"fix"`
	TradeDB *postgres_wrapper.PostgresConfig `yaml:"trade_db"`
	Redis   *redis_wrapper.RedisConfig       `yaml:"redis"`
	Nats    *report.NatsConfig               `yaml:"nats"`
	Kafka   *feed.KafkaConfig                `yaml:"kafka"`
	Sim     *sim.Config                      `yaml:"sim"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	if cfg.Symbol == "" {
		cfg.Symbol = "ABC"
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
