package shopdex

import (
	"time"

	"go.uber.org/zap"
)

type clientConfig struct {
	redisAddrs    []string
	redisPassword string

	mongoURI        string
	mongoDatabase   string
	mongoCollection string
	catalogTimeout  time.Duration

	keyPrefix string
	logger    *zap.Logger
}

// Option configures the client.
type Option func(*clientConfig)

// WithRedis sets the cache store addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) { c.redisAddrs = addrs }
}

// WithRedisPassword sets the cache store password.
func WithRedisPassword(password string) Option {
	return func(c *clientConfig) { c.redisPassword = password }
}

// WithMongo sets the catalog connection.
func WithMongo(uri, database, collection string) Option {
	return func(c *clientConfig) {
		c.mongoURI = uri
		c.mongoDatabase = database
		c.mongoCollection = collection
	}
}

// WithCatalogTimeout bounds each catalog fetch.
func WithCatalogTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.catalogTimeout = d }
}

// WithKeyPrefix namespaces every key in the cache store.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithLogger attaches a logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
