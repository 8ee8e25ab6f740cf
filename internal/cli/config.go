package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Name      string
	Password  string
	Room      string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BATTLESHIP_SERVER", "ws://localhost:8181/ws"),
		Name:      os.Getenv("BATTLESHIP_NAME"),
		Password:  os.Getenv("BATTLESHIP_PASSWORD"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
