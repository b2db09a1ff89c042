package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quantsys/bondflow/pkg/db/queue"
)

// Config represents the application configuration
type Config struct {
	Pipeline struct {
		DataDir   string `yaml:"data_dir"`
		OutDir    string `yaml:"out_dir"`
		BookDepth int    `yaml:"book_depth"`
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"pipeline"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Kafka struct {
		Enabled    bool   `yaml:"enabled"`
		Driver     string `yaml:"driver"`
		BrokerAddr string `yaml:"broker_addr"`
		Topic      string `yaml:"topic"`
	} `yaml:"kafka"`
}

// Kafka client implementations selectable via kafka.driver
const (
	KafkaDriverSarama  = "sarama"
	KafkaDriverKafkaGo = "kafka-go"
)

// Default configuration values
var (
	configFile = flag.String("config", "", "Path to config file (YAML)")
	dataDir    = flag.String("data_dir", "data", "Directory holding the input record files")
	outDir     = flag.String("out_dir", "out", "Directory audit files are written to")
	bookDepth  = flag.Int("book_depth", 10, "Order book depth per side")
	logLevel   = flag.String("log_level", "info", "Log level: debug, info, warn, error")
	logFormat  = flag.String("log_format", "pretty", "Log format: json, pretty")
)

// LoadConfig loads the configuration from command line flags and optionally from a config file
func LoadConfig() (*Config, error) {
	// Parse command line flags
	flag.Parse()

	// Create default configuration
	config := &Config{}
	config.Pipeline.DataDir = *dataDir
	config.Pipeline.OutDir = *outDir
	config.Pipeline.BookDepth = *bookDepth
	config.Pipeline.LogLevel = *logLevel
	config.Pipeline.LogFormat = *logFormat
	config.Redis.Addr = "localhost:6379"
	config.Kafka.Driver = KafkaDriverSarama
	config.Kafka.BrokerAddr = "localhost:9092"
	config.Kafka.Topic = "bondflow-audit"

	// Load configuration from file if specified
	if *configFile != "" {
		yamlFile, err := os.ReadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse YAML configuration
		if err := yaml.Unmarshal(yamlFile, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		log.Printf("Loaded configuration from %s", *configFile)
	}

	if config.Pipeline.BookDepth <= 0 {
		return nil, fmt.Errorf("book_depth must be positive")
	}

	switch config.Kafka.Driver {
	case KafkaDriverSarama, KafkaDriverKafkaGo:
	default:
		return nil, fmt.Errorf("unknown kafka driver %q", config.Kafka.Driver)
	}

	// Override Kafka configuration in package variables
	if config.Kafka.Enabled {
		queue.SetBrokerList([]string{config.Kafka.BrokerAddr})
		queue.SetTopic(config.Kafka.Topic)
	}

	return config, nil
}
