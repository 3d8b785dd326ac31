package appconf

import "strings"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps the --env flag to an Environment. Unknown values fall back
// to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// Config holds the HTTP-facing settings of the dashboard server.
type Config struct {
	Port       int
	Env        Environment
	ApiKeys    []string
	RateLimit  int // requests per second per client, 0 disables limiting
	LogLevel   string
	AssetsHost string
}

// AuthEnabled reports whether requests must carry one of ApiKeys.
func (c Config) AuthEnabled() bool {
	return len(c.ApiKeys) > 0
}
