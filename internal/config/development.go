package config

import "os"

// Development is read straight from the environment so loggers can be set
// up before the rest of the config.
func Development() bool {
	development, ok := os.LookupEnv("MINES_DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0" && development != "false"
}
