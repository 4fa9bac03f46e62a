package config

const (
	DefaultPort = "8000"
)

var (
	DefaultAllowedOrigins = []string{"http://localhost:3000"}
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	Process        ProcessConfig
}

func (c *ServerConfig) PopulateUnsetConfigVars() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = DefaultAllowedOrigins
	}
	c.Process.PopulateUnsetConfigVars()
}
