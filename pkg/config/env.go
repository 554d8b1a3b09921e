package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvFeedURL     = "FEED_URL"
	EnvFeedTimeout = "FEED_TIMEOUT"

	EnvClubName = "CLUB_NAME"
	EnvTeamName = "TEAM_NAME"
	EnvTeamAge  = "TEAM_AGE"

	EnvInventoryFile          = "INVENTORY_FILE"
	EnvIncludeUnknownFixtures = "INCLUDE_UNKNOWN_FIXTURES"
	EnvRefreshCron            = "REFRESH_CRON"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
