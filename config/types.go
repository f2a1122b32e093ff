package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// DiscoveryConfig contains stop discovery client configuration
type DiscoveryConfig struct {
	TimeoutMS int `yaml:"timeoutMS" validate:"gte=0"`
}

// RegistryConfig points at an operator registry file. Empty means the
// registry embedded in the binary.
type RegistryConfig struct {
	Path string `yaml:"path" validate:"omitempty,filepath"`
}

// StoreConfig contains the entry store configuration
type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Registry  RegistryConfig  `yaml:"registry"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	// APIToken pre-fills the credential prompt; only ever set from the environment.
	APIToken string `yaml:"-"`
}
