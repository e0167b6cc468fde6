package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ground-control/internal/control_plane/persistence"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/cache"
	"ground-control/internal/infra/httpserver"
	"ground-control/internal/infra/mqtt"
	"ground-control/internal/infra/sql"
	"ground-control/internal/logger"

	"github.com/spf13/viper"
)

const (
	EnvironmentLocal      = "local"
	EnvironmentProduction = "production"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	_envPrefix  = "ground_control"
	_configName = "ground-control"
)

var loadConfigOnce sync.Once
var configInstance AppConfig
var configErr error

// LoadConfig reads config/ground-control.yaml once. A missing file is not an
// error: every key has a default and can be set from GROUND_CONTROL_* vars.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		configInstance, configErr = load(viper.GetViper(), "config", "/config")
	})
	if configErr != nil {
		panic(fmt.Errorf("fatal error config file: %w", configErr))
	}
	return configInstance
}

// LoadConfigFrom builds a fresh configuration from the given directories
// without touching the process wide instance.
func LoadConfigFrom(dirs ...string) (AppConfig, error) {
	return load(viper.New(), dirs...)
}

func load(v *viper.Viper, dirs ...string) (AppConfig, error) {
	v.SetEnvPrefix(_envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("general.environment", "ENV"); err != nil {
		return AppConfig{}, err
	}
	v.SetConfigName(_configName)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, err
		}
	}

	parser := dto.DefaultParserConfig()
	if err := v.UnmarshalKey("parser", &parser); err != nil {
		return AppConfig{}, fmt.Errorf("parser section: %w", err)
	}

	var stages []StageConfig
	if err := v.UnmarshalKey("procedure.stages", &stages); err != nil {
		return AppConfig{}, fmt.Errorf("procedure stages: %w", err)
	}

	memoryCache := cache.DefaultConfig()
	if err := v.UnmarshalKey("cache.memory", memoryCache); err != nil {
		return AppConfig{}, fmt.Errorf("cache memory section: %w", err)
	}
	redisCache := cache.DefaultRedisConfig()
	if err := v.UnmarshalKey("cache.redis", redisCache); err != nil {
		return AppConfig{}, fmt.Errorf("cache redis section: %w", err)
	}

	return AppConfig{
		General: GeneralConfig{
			LogLevel:    v.GetString("general.log_level"),
			Environment: v.GetString("general.environment"),
			Station:     v.GetString("general.station"),
		},
		HTTP: httpserver.Config{
			Addr:           v.GetString("http.addr"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
			ReadTimeout:    v.GetDuration("http.read_timeout"),
		},
		Serial: SerialConfig{
			Port:         v.GetString("serial.port"),
			BaudRate:     v.GetInt("serial.baud_rate"),
			ReadTimeout:  v.GetDuration("serial.read_timeout"),
			PinWidth:     v.GetInt("serial.pin_width"),
			DefaultPins:  v.GetString("serial.default_pins"),
			Yield:        v.GetDuration("serial.yield"),
			DegradedPoll: v.GetDuration("serial.degraded_poll"),
			AutoStart:    v.GetBool("serial.auto_start"),
		},
		Parser: parser,
		Procedure: ProcedureConfig{
			Countdown: usecases.CountdownOpts{
				From:     v.GetInt("procedure.countdown.from"),
				Interval: v.GetDuration("procedure.countdown.interval"),
			},
			Stages: stages,
		},
		Database: DatabaseConfig{
			Postgres: sql.PostgresConfig{
				DSN:          v.GetString("database.dsn"),
				QueryTimeout: v.GetDuration("database.query_timeout"),
				AutoMigrate:  v.GetBool("database.auto_migrate"),
			},
			Retention: usecases.RetentionOpts{
				Schedule: v.GetString("database.retention.schedule"),
				MaxAge:   v.GetDuration("database.retention.max_age"),
			},
			RetentionTick: v.GetDuration("database.retention.tick"),
		},
		Journal: logger.JournalConfig{
			Enabled: v.GetBool("journal.enabled"),
			Path:    v.GetString("journal.path"),
		},
		Cache: CacheConfig{
			Backend: v.GetString("cache.backend"),
			Memory:  memoryCache,
			Redis:   redisCache,
			Snapshot: persistence.TelemetrySnapshotStoreConfig{
				KeyPrefix: v.GetString("cache.snapshot.key_prefix"),
				TTL:       v.GetDuration("cache.snapshot.ttl"),
			},
		},
		MQTTClient: mqtt.ClientConfig{
			Enabled:     v.GetBool("mqtt_client.enabled"),
			Broker:      v.GetString("mqtt_client.broker"),
			ClientID:    v.GetString("mqtt_client.client_id"),
			Username:    v.GetString("mqtt_client.username"),
			Password:    v.GetString("mqtt_client.password"),
			TopicPrefix: v.GetString("mqtt_client.topic_prefix"),
		},
		Kafka: KafkaConfig{
			Enabled:           v.GetBool("kafka.enabled"),
			Brokers:           v.GetStringSlice("kafka.brokers"),
			Group:             v.GetString("kafka.group"),
			SchemaRegistryURL: v.GetString("kafka.schema_registry_url"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.environment", EnvironmentProduction)
	v.SetDefault("general.station", "default")

	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("http.read_timeout", 15*time.Second)

	v.SetDefault("serial.baud_rate", 9600)
	v.SetDefault("serial.read_timeout", 50*time.Millisecond)
	v.SetDefault("serial.pin_width", dto.DefaultPinWidth)
	v.SetDefault("serial.default_pins", "")
	v.SetDefault("serial.yield", 20*time.Millisecond)
	v.SetDefault("serial.degraded_poll", 250*time.Millisecond)
	v.SetDefault("serial.auto_start", false)

	v.SetDefault("procedure.countdown.from", usecases.DefaultCountdownFrom)
	v.SetDefault("procedure.countdown.interval", usecases.DefaultCountdownInterval)

	v.SetDefault("database.dsn", "host=localhost user=postgres dbname=ground_control port=5432 sslmode=disable")
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.retention.schedule", usecases.DefaultRetentionSchedule)
	v.SetDefault("database.retention.max_age", 30*24*time.Hour)
	v.SetDefault("database.retention.tick", time.Minute)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "mission.log")

	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.snapshot.key_prefix", "ground_control:")
	v.SetDefault("cache.snapshot.ttl", time.Duration(0))

	v.SetDefault("mqtt_client.enabled", false)
	v.SetDefault("mqtt_client.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt_client.topic_prefix", mqtt.DefaultTopicPrefix)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:19092"})
	v.SetDefault("kafka.group", "ground-control")
	v.SetDefault("kafka.schema_registry_url", "")
}

type AppConfig struct {
	General    GeneralConfig
	HTTP       httpserver.Config
	Serial     SerialConfig
	Parser     dto.ParserConfig
	Procedure  ProcedureConfig
	Database   DatabaseConfig
	Journal    logger.JournalConfig
	Cache      CacheConfig
	MQTTClient mqtt.ClientConfig
	Kafka      KafkaConfig
}

func (c AppConfig) IsLocal() bool {
	return c.General.Environment == EnvironmentLocal
}

type GeneralConfig struct {
	LogLevel    string
	Environment string
	Station     string
}

type SerialConfig struct {
	// Port is opened at startup when AutoStart is set.
	Port         string
	BaudRate     int
	ReadTimeout  time.Duration
	PinWidth     int
	DefaultPins  string
	Yield        time.Duration
	DegradedPoll time.Duration
	AutoStart    bool
}

type ProcedureConfig struct {
	Countdown usecases.CountdownOpts
	// Stages replaces the built in checklist when not empty.
	Stages []StageConfig
}

type StageConfig struct {
	ID    string       `mapstructure:"id"`
	Title string       `mapstructure:"title"`
	Tasks []TaskConfig `mapstructure:"tasks"`
}

type TaskConfig struct {
	ID          string `mapstructure:"id"`
	Description string `mapstructure:"description"`
	Prompt      string `mapstructure:"prompt"`
}

type DatabaseConfig struct {
	Postgres      sql.PostgresConfig
	Retention     usecases.RetentionOpts
	RetentionTick time.Duration
}

type CacheConfig struct {
	Backend  string
	Memory   *cache.CacheConfig
	Redis    *cache.RedisConfig
	Snapshot persistence.TelemetrySnapshotStoreConfig
}

type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	Group             string
	SchemaRegistryURL string
}
