package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/linkscan/internal/scan/domain"
)

// EnvPrefix is stripped from environment variable names before they are
// matched against koanf keys.
const EnvPrefix = "SCAN_"

// AppConfig holds configuration values parsed from defaults, an optional
// .env file and SCAN_-prefixed environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	TypoThreshold      float64 `koanf:"typo_threshold" validate:"unit_interval"`
	HeuristicThreshold float64 `koanf:"heuristic_threshold" validate:"gte=0"`

	// AllowDomains are built-in known-good domains, merged with AllowFiles.
	AllowDomains []string `koanf:"allow_domains" validate:"dive,hostname_rfc1123"`
	// AllowFiles are plain, hosts or YAML allow-list files.
	AllowFiles []string `koanf:"allow_files" validate:"dive,required"`
	// AllowDB is an optional bbolt database persisting the allow-list.
	AllowDB string `koanf:"allow_db"`

	Keywords []string `koanf:"keywords" validate:"dive,required"`

	WeightCredentials     float64 `koanf:"weight_credentials" validate:"gte=0"`
	WeightIPHost          float64 `koanf:"weight_ip_host" validate:"gte=0"`
	WeightDeepSubdomain   float64 `koanf:"weight_deep_subdomain" validate:"gte=0"`
	WeightDeeperSubdomain float64 `koanf:"weight_deeper_subdomain" validate:"gte=0"`
	WeightHyphen          float64 `koanf:"weight_hyphen" validate:"gte=0"`
	WeightDigit           float64 `koanf:"weight_digit" validate:"gte=0"`
	WeightKeyword         float64 `koanf:"weight_keyword" validate:"gte=0"`
	WeightLongLabel       float64 `koanf:"weight_long_label" validate:"gte=0"`
	WeightLongURL         float64 `koanf:"weight_long_url" validate:"gte=0"`
	WeightQueryParams     float64 `koanf:"weight_query_params" validate:"gte=0"`

	// CacheSize bounds the verdict memo; 0 disables it.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`
	// Workers bounds concurrent classification in batch mode.
	Workers int `koanf:"workers" validate:"gte=1,lte=256"`
	// BloomFPRate is the target false-positive rate of the allow-list prefilter.
	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"gt=0,lt=1"`
}

// DEFAULT_APP_CONFIG defines the default scanner configuration.
var DEFAULT_APP_CONFIG = defaultAppConfig()

func defaultAppConfig() AppConfig {
	w := domain.DefaultWeights()
	return AppConfig{
		Env:                   "prod",
		LogLevel:              "info",
		TypoThreshold:         domain.DefaultTypoThreshold,
		HeuristicThreshold:    domain.DefaultHeuristicThreshold,
		AllowDomains:          []string{"examples.com", "google.com", "facebook.com", "youtube.com"},
		AllowFiles:            []string{},
		Keywords:              domain.DefaultKeywords(),
		WeightCredentials:     w.Credentials,
		WeightIPHost:          w.IPHost,
		WeightDeepSubdomain:   w.DeepSubdomain,
		WeightDeeperSubdomain: w.DeeperSubdomain,
		WeightHyphen:          w.Hyphen,
		WeightDigit:           w.Digit,
		WeightKeyword:         w.Keyword,
		WeightLongLabel:       w.LongLabel,
		WeightLongURL:         w.LongURL,
		WeightQueryParams:     w.QueryParams,
		CacheSize:             1024,
		Workers:               8,
		BloomFPRate:           0.01,
	}
}

// Weights returns the configured signal weights.
func (c *AppConfig) Weights() domain.Weights {
	return domain.Weights{
		Credentials:     c.WeightCredentials,
		IPHost:          c.WeightIPHost,
		DeepSubdomain:   c.WeightDeepSubdomain,
		DeeperSubdomain: c.WeightDeeperSubdomain,
		Hyphen:          c.WeightHyphen,
		Digit:           c.WeightDigit,
		Keyword:         c.WeightKeyword,
		LongLabel:       c.WeightLongLabel,
		LongURL:         c.WeightLongURL,
		QueryParams:     c.WeightQueryParams,
	}
}

// validUnitInterval accepts finite floats in [0,1].
func validUnitInterval(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// DotenvPath is the optional .env file read before the environment.
var DotenvPath = ".env"

// dotenvLoader populates the process environment from DotenvPath without
// overriding variables that are already set. A missing file is not an error.
var dotenvLoader = func() error {
	err := godotenv.Load(DotenvPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// envLoader loads variables with the SCAN_ prefix, lowercasing keys and
// splitting space or comma separated values into lists.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("unit_interval", validUnitInterval)
}

// Load builds an AppConfig from defaults, the optional .env file and the
// environment, then validates it.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := dotenvLoader(); err != nil {
		return nil, fmt.Errorf("error loading dotenv: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate runs struct validation, including the unit_interval tag.
func Validate(cfg *AppConfig) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
