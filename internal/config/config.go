package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Navigation NavigationConfig `mapstructure:"navigation"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Match      MatchConfig      `mapstructure:"match"`
	Amigo      AmigoConfig      `mapstructure:"amigo"`
	Cortin     CortinConfig     `mapstructure:"cortin"`
	Inter      InterConfig      `mapstructure:"inter"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// NavigationConfig holds drill-down behaviour shared by all vendors
type NavigationConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	Timeout              int    `mapstructure:"timeout"`
	UserAgent            string `mapstructure:"user_agent"`
	Proxy                string `mapstructure:"proxy"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// MatchConfig holds name canonicalization settings
type MatchConfig struct {
	NoisePrefixes []string `mapstructure:"noise_prefixes"`
}

// AmigoConfig holds the Amigo vendor source configuration. Gofre data ships
// with the catalog but the category is withdrawn from sale, so it stays off
// unless include_gofre is set.
type AmigoConfig struct {
	DataDir      string `mapstructure:"data_dir"`
	BaseURL      string `mapstructure:"base_url"`
	LetterFilter bool   `mapstructure:"letter_filter"`
	IncludeGofre bool   `mapstructure:"include_gofre"`
}

// CortinConfig holds the Cortin vendor source configuration. The stock page
// requires a pre-obtained cookie bundle; CookieFile points at it.
type CortinConfig struct {
	DataDir      string `mapstructure:"data_dir"`
	BaseURL      string `mapstructure:"base_url"`
	CookieFile   string `mapstructure:"cookie_file"`
	Category     string `mapstructure:"category"`
	ProductType  string `mapstructure:"product_type"`
	MinStockRows int    `mapstructure:"min_stock_rows"`
	LetterFilter bool   `mapstructure:"letter_filter"`
}

// InterConfig holds the Inter vendor source configuration
type InterConfig struct {
	CatalogFile  string `mapstructure:"catalog_file"`
	BaseURL      string `mapstructure:"base_url"`
	LetterFilter bool   `mapstructure:"letter_filter"`
}

// RedisConfig holds session store connection details; disabled by default,
// in which case sessions live in process memory.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// DatabaseConfig holds the resolution log database; disabled by default.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config.yaml is fine: defaults plus env overrides apply.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("navigation.page_size", 10)

	viper.SetDefault("http.timeout", 15)
	viper.SetDefault("http.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("http.proxy", "")
	viper.SetDefault("http.max_requests_per_second", 5)

	viper.SetDefault("match.noise_prefixes", []string{"зебра", "полоса"})

	viper.SetDefault("amigo.data_dir", "./data/amigo")
	viper.SetDefault("amigo.base_url", "https://customizer.amigo.ru")
	viper.SetDefault("amigo.letter_filter", true)
	viper.SetDefault("amigo.include_gofre", false)

	viper.SetDefault("cortin.data_dir", "./data/cortin")
	viper.SetDefault("cortin.base_url", "https://sale.cortin.ru")
	viper.SetDefault("cortin.cookie_file", "./cookies.json")
	viper.SetDefault("cortin.category", "Римские шторы")
	viper.SetDefault("cortin.product_type", "День-Ночь")
	viper.SetDefault("cortin.min_stock_rows", 100)
	viper.SetDefault("cortin.letter_filter", true)

	viper.SetDefault("inter.catalog_file", "./data/inter/catalog.json")
	viper.SetDefault("inter.base_url", "https://interfabrics.ru")
	viper.SetDefault("inter.letter_filter", true)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "navigator")
	viper.SetDefault("database.user", "navigator_user")
	viper.SetDefault("database.password", "navigator_pass")
}
