package config

import (
	"fmt"
	"reflect"
	"strings"

	"lakecircle/core/controlplane"
	"lakecircle/core/database"
	"lakecircle/core/logger"
	"lakecircle/core/reconcile"
	"lakecircle/core/server"
	"lakecircle/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "LCC"

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Endpoint is the s3://bucket/prefix location of definitions and reports.
	Endpoint string `mapstructure:"endpoint" default:""`
	// Actions lists the workflows run by the run command, in order.
	Actions []string `mapstructure:"actions" default:"SYNC"`
	// AWS holds configuration for the control plane whose buckets are reconciled.
	AWS controlplane.Config `mapstructure:"aws"`
	// Storage holds configuration for the object storage holding the endpoint.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LCC_AWS_REGION -> aws.region)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// LCC_APP_LEVEL is the historical name of the log level.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", EnvPrefix+"_APP_LEVEL"); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.Actions = splitActions(config.Actions)

	return &config, nil
}

// splitActions accepts both list and comma separated forms.
func splitActions(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	// Missing holds the environment variables of required keys left empty.
	Missing []string
	// Invalid holds descriptions of values that could not be accepted.
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, strings.Join(e.Invalid, "; "))
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validate checks the keys every reconciliation needs.
func (c *Config) Validate() error {
	verr := &ValidationError{}
	missing := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			verr.Missing = append(verr.Missing, EnvPrefix+"_"+key)
		}
	}

	missing("ENDPOINT", c.Endpoint)
	missing("AWS_ACCOUNT", c.AWS.Account)
	missing("AWS_REGION", c.AWS.Region)

	if c.Endpoint != "" {
		if _, err := storage.ParseEndpoint(c.Endpoint); err != nil {
			verr.Invalid = append(verr.Invalid, err.Error())
		}
	}
	if len(c.Actions) == 0 {
		verr.Missing = append(verr.Missing, EnvPrefix+"_ACTIONS")
	}
	for _, a := range c.Actions {
		if _, err := reconcile.ParseKind(a); err != nil {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("action: %v", err))
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Location returns the parsed endpoint.
func (c *Config) Location() (storage.Endpoint, error) {
	return storage.ParseEndpoint(c.Endpoint)
}

// Kinds returns the configured workflows in order.
func (c *Config) Kinds() ([]reconcile.Kind, error) {
	kinds := make([]reconcile.Kind, 0, len(c.Actions))
	for _, a := range c.Actions {
		k, err := reconcile.ParseKind(a)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// CacheKey identifies the reconciled scope for cached plans.
func (c *Config) CacheKey() string {
	return c.AWS.Account + "/" + c.AWS.Region + "/" + c.Endpoint
}
