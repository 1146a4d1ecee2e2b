package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"rundash/internal/structures"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "RunDash"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8050)
	v.SetDefault("persistence.filePath", "data/activities.csv")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.dir", "")
	v.SetDefault("logger.maxSize", 10)
	v.SetDefault("logger.maxBackups", 3)
	v.SetDefault("logger.maxAge", 28)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.console", true)

	v.SetDefault("strava.authUrl", "https://www.strava.com/oauth/token")
	v.SetDefault("strava.activitiesUrl", "https://www.strava.com/api/v3/athlete/activities")
	v.SetDefault("strava.scope", "activity:read_all")
	v.SetDefault("strava.perPage", 200)
	v.SetDefault("strava.timeout", 30*time.Second)

	v.SetDefault("dashboard.title", "Strava Dashboard")
	v.SetDefault("dashboard.recentCount", 6)
	v.SetDefault("dashboard.monthlyZeroFill", true)
	v.SetDefault("dashboard.busiestMonth", "earliest")
	v.SetDefault("dashboard.defaultCenter", []float64{60.192059, 24.945831})

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 0)

	v.SetDefault("metrics.enabled", true)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("webServer.port", "PORT")
	_ = v.BindEnv("strava.clientId", "CLIENT_ID")
	_ = v.BindEnv("strava.clientSecret", "CLIENT_SECRET")
	_ = v.BindEnv("strava.refreshToken", "REFRESH_TOKEN")
	_ = v.BindEnv("logger.level", "RUNDASH_LOG_LEVEL")
	_ = v.BindEnv("persistence.filePath", "RUNDASH_TABLE_PATH")
}

// NewConfigProvider builds the configuration from defaults, the optional YAML
// file at flags.ConfigPath, a .env file in the working directory and the process
// environment, in increasing order of precedence.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", flags.ConfigPath, err)
			}
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if flags.TablePath != "" {
		conf.Persistence.FilePath = flags.TablePath
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	if conf.Debug {
		conf.Logger.Level = "debug"
	}

	return &conf, nil
}
