package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string `mapstructure:"level" default:"info"`
	// Format is json or console. The names text, colortext, tree and
	// colortree are accepted and render as console output.
	Format string `mapstructure:"format" default:"json"`
}
