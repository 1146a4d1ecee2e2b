package structures

import "time"

type Server struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required|min:1|max:65535"`
}

type Persistence struct {
	FilePath string `mapstructure:"filePath" validate:"required"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Dir        string `mapstructure:"dir"`
	MaxSize    int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

type StravaConfig struct {
	AuthURL       string        `mapstructure:"authUrl" validate:"required"`
	ActivitiesURL string        `mapstructure:"activitiesUrl" validate:"required"`
	ClientID      string        `mapstructure:"clientId"`
	ClientSecret  string        `mapstructure:"clientSecret"`
	RefreshToken  string        `mapstructure:"refreshToken"`
	Scope         string        `mapstructure:"scope"`
	PerPage       int           `mapstructure:"perPage" validate:"required|min:1|max:200"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type DashboardConfig struct {
	Title           string     `mapstructure:"title"`
	RecentCount     int        `mapstructure:"recentCount"`
	MonthlyZeroFill bool       `mapstructure:"monthlyZeroFill"`
	BusiestMonth    string     `mapstructure:"busiestMonth" validate:"in:earliest,latest"`
	DefaultCenter   [2]float64 `mapstructure:"defaultCenter"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `mapstructure:"webServer"`
	Persistence Persistence     `mapstructure:"persistence"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Strava      StravaConfig    `mapstructure:"strava"`
	Dashboard   DashboardConfig `mapstructure:"dashboard"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
}
