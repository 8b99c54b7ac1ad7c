package env

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AWSRegion         = "AWS_REGION"
	AWSID             = "AWS_ID"
	AWSSecret         = "AWS_SECRET"
	AWSToken          = "AWS_TOKEN"
	DynamoDBEndpoint  = "DYNAMODB_ENDPOINT"
	StoreDriver       = "STORE_DRIVER"
	DatabaseURL       = "DATABASE_URL"
	TablePrefix       = "TABLE_PREFIX"
	SessionRedisURL   = "SESSION_REDIS_URL"
	SessionRedisPass  = "SESSION_REDIS_PASS"
	AuthRedisURL      = "AUTH_REDIS_URL"
	AuthRedisPass     = "AUTH_REDIS_PASS"
	FeedRedisURL      = "FEED_REDIS_URL"
	FeedRedisPass     = "FEED_REDIS_PASS"
	RabbitMQURL       = "RABBITMQ_URL"
	AdminEmail        = "ADMIN_EMAIL"
	AdminSecretKey    = "ADMIN_SECRET"
	AdminPasswordHash = "ADMIN_PASSWORD_HASH"
	ParamPrefix       = "PARAM_PREFIX"
	KnowledgeBasePath = "KNOWLEDGE_BASE_PATH"
	WebUrl            = "WEB_URL"
	SessionTTL        = "SESSION_TTL"
	ListenAddr        = "LISTEN_ADDR"
)

var (
	loadOnce sync.Once
	v        *viper.Viper
)

func load() *viper.Viper {
	loadOnce.Do(func() {
		// a missing .env is fine; real deployments inject the environment
		_ = godotenv.Load()

		v = viper.New()
		v.AutomaticEnv()
		v.SetDefault(StoreDriver, "dynamodb")
		v.SetDefault(SessionTTL, "30m")
		v.SetDefault(WebUrl, "http://localhost:3000")
	})
	return v
}

func Get(key string) string {
	return strings.TrimSpace(load().GetString(key))
}

func GetOrDefault(key, defaultVal string) string {
	val := Get(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := Get(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}

// Set overrides a key for the running process, e.g. with a resolved secret.
func Set(key, value string) {
	load().Set(key, value)
}

// Require reports every missing key at once.
func Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if Get(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("env: required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
