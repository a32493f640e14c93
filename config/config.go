package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Reference ReferenceConfig `yaml:"reference"`
	Stats     StatsConfig     `yaml:"stats"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// DatabaseConfig selects the flight store. Driver is "pgx" (default),
// "postgres" (lib/pq) or "sqlite3", in which case only Path is used.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Path     string `yaml:"path"`
}

func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite3" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	FlightsTopic string   `yaml:"flights_topic"`
	GroupID      string   `yaml:"group_id"`
}

type ReferenceConfig struct {
	AirportsPath string `yaml:"airports_path"`
	AirlinesPath string `yaml:"airlines_path"`
}

type StatsConfig struct {
	AvgSpeedKmh     float64 `yaml:"avg_speed_kmh"`
	PathPoints      int     `yaml:"path_points"`
	TimeZone        string  `yaml:"time_zone"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

func (s StatsConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// Location resolves TimeZone; "today" for the upcoming selector is taken in it.
func (s StatsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid stats time zone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "pgx"
	}
	if c.Database.Driver == "sqlite3" && c.Database.Path == "" {
		c.Database.Path = "flightlog.db"
	}
	if c.Kafka.FlightsTopic == "" {
		c.Kafka.FlightsTopic = "flightlog.flights"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "flightlog-worker"
	}
	if c.Reference.AirportsPath == "" {
		c.Reference.AirportsPath = "data/airports_info.json"
	}
	if c.Reference.AirlinesPath == "" {
		c.Reference.AirlinesPath = "data/airlines.json"
	}
	if c.Stats.AvgSpeedKmh <= 0 {
		c.Stats.AvgSpeedKmh = 900
	}
	if c.Stats.PathPoints <= 0 {
		c.Stats.PathPoints = 300
	}
	if c.Stats.TimeZone == "" {
		c.Stats.TimeZone = "UTC"
	}
	if c.Stats.CacheTTLSeconds <= 0 {
		c.Stats.CacheTTLSeconds = 300
	}
}
