package execution

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the algo execution engine parameters
type Config struct {
	// SpreadThresholdTicks is the widest crossable spread, in 1/256 ticks
	SpreadThresholdTicks int64
	// Market is the venue emitted orders are routed to
	Market Market
}

// LoadConfig loads engine configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("ALGO_SPREAD_THRESHOLD_TICKS", 2) // 1/128 point
	v.SetDefault("ALGO_MARKET", string(BrokerTec))

	// Allow environment variables
	v.AutomaticEnv()

	cfg := &Config{
		SpreadThresholdTicks: v.GetInt64("ALGO_SPREAD_THRESHOLD_TICKS"),
		Market:               Market(v.GetString("ALGO_MARKET")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.SpreadThresholdTicks <= 0 {
		return fmt.Errorf("ALGO_SPREAD_THRESHOLD_TICKS must be positive")
	}
	switch cfg.Market {
	case BrokerTec, ESpeed, CME:
	default:
		return fmt.Errorf("ALGO_MARKET must be one of BROKERTEC, ESPEED, CME")
	}
	return nil
}
