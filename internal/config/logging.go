package config

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadLogConfig reads LOG_LEVEL, defaulting to info
func LoadLogConfig(getenv func(string) string) LogConfig {
	level := getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return LogConfig{Level: level}
}
