package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quirino-git/fbs-plan/pkg/client"
	"github.com/quirino-git/fbs-plan/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	FeedURL     string
	FeedTimeout time.Duration

	ClubName string
	TeamName string
	// TeamAge is the age category of the team whose fixtures are planned.
	// nil means an open team with no age restriction.
	TeamAge *int

	InventoryFile string

	// IncludeUnknownFixtures controls whether fixtures whose home/away side
	// could not be determined pass the home-only filter. Defaults to true:
	// wrongly hiding a genuine home game costs more than an extra row.
	IncludeUnknownFixtures bool

	RefreshCron string

	KafkaBrokers []string
	KafkaTopic   string

	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		FeedURL:     getEnvStr(EnvFeedURL, ""),
		FeedTimeout: getEnvDuration(EnvFeedTimeout, DefaultFeedTimeout),

		ClubName: getEnvStr(EnvClubName, ""),
		TeamName: getEnvStr(EnvTeamName, ""),
		TeamAge:  getEnvOptionalNum(EnvTeamAge),

		InventoryFile:          getEnvStr(EnvInventoryFile, DefaultInventoryFile),
		IncludeUnknownFixtures: getEnvBool(EnvIncludeUnknownFixtures, true),
		RefreshCron:            getEnvStr(EnvRefreshCron, DefaultRefreshCron),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, ""),

		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.FeedURL == "" {
		errors = append(errors, "FeedURL cannot be empty")
	} else if !strings.HasPrefix(cfg.FeedURL, "http://") && !strings.HasPrefix(cfg.FeedURL, "https://") {
		errors = append(errors, fmt.Sprintf("FeedURL must be an http(s) URL, got: %s", cfg.FeedURL))
	}
	if cfg.FeedTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("FeedTimeout must be positive, got: %s", cfg.FeedTimeout))
	}

	if cfg.ClubName == "" {
		errors = append(errors, "ClubName cannot be empty")
	}
	if cfg.TeamAge != nil && (*cfg.TeamAge < 5 || *cfg.TeamAge > 50) {
		errors = append(errors, fmt.Sprintf("TeamAge must be between 5 and 50, got: %d", *cfg.TeamAge))
	}

	if cfg.InventoryFile == "" {
		errors = append(errors, "InventoryFile cannot be empty")
	}
	if cfg.RefreshCron == "" {
		errors = append(errors, "RefreshCron cannot be empty")
	}

	if cfg.KafkaTopic != "" && len(cfg.KafkaBrokers) == 0 {
		errors = append(errors, "KafkaBrokers cannot be empty when KafkaTopic is set")
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	teamAge := 0
	if cfg.TeamAge != nil {
		teamAge = *cfg.TeamAge
	}
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"feed_url", cfg.FeedURL,
		"feed_timeout", cfg.FeedTimeout,
		"club_name", cfg.ClubName,
		"team_name", cfg.TeamName,
		"team_age", teamAge,
		"inventory_file", cfg.InventoryFile,
		"include_unknown_fixtures", cfg.IncludeUnknownFixtures,
		"refresh_cron", cfg.RefreshCron,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_topic", cfg.KafkaTopic,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvOptionalNum(key string) *int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return &n
		}
	}
	return nil
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
