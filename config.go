package recipebox

import (
	"time"

	"recipebox/spoonacular"
)

// APIConfig configures the recipe API client. The key is never compiled in.
type APIConfig struct {
	BaseURL      string        `env:"RECIPE_API_BASE_URL,default=https://api.spoonacular.com/recipes"`
	APIKey       string        `env:"RECIPE_API_KEY,required"`
	ResultCount  int           `env:"RECIPE_RESULT_COUNT,default=10"`
	Ranking      int           `env:"RECIPE_RANKING,default=1"`
	IgnorePantry bool          `env:"RECIPE_IGNORE_PANTRY,default=true"`
	Timeout      time.Duration `env:"RECIPE_API_TIMEOUT,default=15s"`
}

// SearchOptions returns the configured defaults for ingredient searches.
func (c APIConfig) SearchOptions() spoonacular.SearchOptions {
	return spoonacular.SearchOptions{
		Count:        c.ResultCount,
		Ranking:      spoonacular.Ranking(c.Ranking),
		IgnorePantry: c.IgnorePantry,
	}
}

// StoreConfig selects where favorites are persisted.
type StoreConfig struct {
	Backend     string `env:"FAVORITES_BACKEND,default=file"`
	Key         string `env:"FAVORITES_KEY,default=favorites"`
	FilePath    string `env:"FAVORITES_FILE_PATH,default=artifacts/favorites.json"`
	S3Bucket    string `env:"FAVORITES_S3_BUCKET"`
	RedisURL    string `env:"FAVORITES_REDIS_URL,default=redis://localhost:6379/0"`
	SQLitePath  string `env:"FAVORITES_SQLITE_PATH,default=artifacts/favorites.db"`
	PostgresDSN string `env:"FAVORITES_POSTGRES_DSN"`
}

// NotifyConfig enables posting favorite changes to a Slack webhook.
type NotifyConfig struct {
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#recipes"`
}
