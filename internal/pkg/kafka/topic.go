package kafka

const (
	// TopicIndexMigrations is the name of the Kafka topic for applied index migration events.
	TopicIndexMigrations = "index-migrations"
)
