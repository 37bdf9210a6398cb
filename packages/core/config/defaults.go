package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    10,
		Proxy:           "",
		Headers:         nil,
		Indent:          2,
		LogLevel:        "warn",
		LogFormat:       "console",
		Verbose:         BoolPtr(false),
		NoColor:         BoolPtr(false),
		ColorJSON:       BoolPtr(true),
	}
}
