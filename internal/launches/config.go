package launches

import "launchdash.dev/internal/appconf"

// DefaultSource is the dataset path used when none is configured.
const DefaultSource = "spacex_launch_dash.csv"

type Config struct {
	Source   string // local path or http(s) URL of the CSV file
	DataPath string // SQLite path for the mirror; ":memory:" keeps it in RAM
	Env      appconf.Environment
	Verbose  bool
}

func (config Config) isLocalFile() bool {
	return !isRemote(config.Source)
}
