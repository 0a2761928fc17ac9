package config

import (
	"os"

	"github.com/gin-gonic/gin"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	// Other environments are set via ENV variable
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// GinMode maps the environment onto a gin mode.
func (e Environment) GinMode() string {
	switch e {
	case Production:
		return gin.ReleaseMode
	case Test, CI:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
