package util

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvironment reads the given .env files (".env" when none are named) into
// the process environment without overriding variables that are already set.
// Missing files are ignored.
func LoadEnvironment(files ...string) map[string]string {
	_ = godotenv.Load(files...)

	return GetEnvironmentVariables()
}

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}
