package configuration

import (
	"fmt"
	"os"
	"strconv"

	"lcmtv/domain/model"
	"lcmtv/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	Data        Data        `json:"data"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	YouTube     YouTube     `json:"youtube"`
	Import      Import      `json:"import"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql  Db `json:"psql"`
	MySql Db `json:"mysql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Data selects the active store backend: "psql" (default) or "mysql".
type Data struct {
	Source string `json:"source"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
	SubID     string `json:"subID"`
}

type YouTube struct {
	APIKey    string `json:"apiKey"`
	Region    string `json:"region"`
	UserAgent string `json:"userAgent"`
}

// Import holds the seed list for the initial bulk import. When empty, the
// orchestrator falls back to the built-in default seeds.
type Import struct {
	Seeds []model.ImportSeed `json:"seeds"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}

	if C.Database.MySql.Name == "" {
		C.Database.MySql.Name = os.Getenv("MYSQL_DB_NAME")
	}
	if C.Database.MySql.Host == "" {
		C.Database.MySql.Host = os.Getenv("MYSQL_HOST")
	}
	if C.Database.MySql.User == "" {
		C.Database.MySql.User = os.Getenv("MYSQL_USER")
	}
	if C.Database.MySql.Password == "" {
		C.Database.MySql.Password = os.Getenv("MYSQL_PASSWORD")
	}
	if C.Database.MySql.Port == "" {
		if v := os.Getenv("MYSQL_PORT"); v != "" {
			C.Database.MySql.Port = v
		} else {
			C.Database.MySql.Port = "3306"
		}
	}

	if v := os.Getenv("DATA_SOURCE"); v != "" {
		C.Data.Source = v
	}
	if C.Data.Source == "" {
		C.Data.Source = "psql"
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided.
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order: APP_PORT -> PORT -> config -> default 10002
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10002
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; admin JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

// GetYouTubeConfig resolves the source-client credentials, environment first.
// There is deliberately no baked-in fallback key: a missing key leaves the
// import surface disabled at wiring time.
func GetYouTubeConfig() YouTube {
	cfg := YouTube{
		APIKey:    getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
		Region:    getConfigValue(C.YouTube.Region, "YOUTUBE_REGION", "US"),
		UserAgent: getConfigValue(C.YouTube.UserAgent, "YOUTUBE_USER_AGENT", "LCMTV/1.0"),
	}
	if cfg.APIKey == "" {
		logger.GetLogger().Warn("YouTube API key not configured. Set YOUTUBE_API_KEY environment variable.")
	}
	return cfg
}

// ImportSeeds returns the configured initial-import seed list, or the
// default curated list when the config omits one.
func ImportSeeds() []model.ImportSeed {
	if len(C.Import.Seeds) > 0 {
		return C.Import.Seeds
	}
	return defaultSeeds
}

// defaultSeeds mirrors the curated bootstrap categories: news, sports, music,
// tech and movies.
var defaultSeeds = []model.ImportSeed{
	{Type: "keyword", Value: "breaking news today", CategoryID: 1, Limit: 15},
	{Type: "keyword", Value: "current events", CategoryID: 1, Limit: 10},
	{Type: "keyword", Value: "sports highlights", CategoryID: 2, Limit: 15},
	{Type: "keyword", Value: "football soccer", CategoryID: 2, Limit: 10},
	{Type: "keyword", Value: "music videos", CategoryID: 3, Limit: 20},
	{Type: "keyword", Value: "technology news", CategoryID: 6, Limit: 15},
	{Type: "keyword", Value: "gadgets review", CategoryID: 6, Limit: 10},
	{Type: "keyword", Value: "movie trailers", CategoryID: 7, Limit: 15},
}

// getConfigValue gets value from environment first, then config, then default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}
