// Package constants defines global constants used throughout contactform.
// It includes version information, provider identifiers and runtime environments.
package constants

import "strings"

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of contactform.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool and application
const ProjectName = "contactform"

// EnvPrefix is the prefix of every environment variable read by the services.
const EnvPrefix = "CONTACTFORM"

// Environment represents the execution environment (e.g., CLI, Lambda).
type Environment string

// Environment types for logger configuration
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)

// EmailProvider identifies the backend used to deliver notification emails.
type EmailProvider string

const (
	// EmailProviderSES delivers mail through Amazon SES (v2 API).
	EmailProviderSES EmailProvider = "ses"
	// EmailProviderResend delivers mail through the Resend HTTP API.
	EmailProviderResend EmailProvider = "resend"
	// EmailProviderLog only writes the messages to the logger.
	EmailProviderLog EmailProvider = "log"
)

// LambdaAdapter selects how the Lambda runtime invokes the request handler.
type LambdaAdapter string

const (
	// LambdaAdapterProxy decodes API Gateway proxy events directly.
	LambdaAdapterProxy LambdaAdapter = "proxy"
	// LambdaAdapterRouter serves the HTTP router through algnhsa (Function URLs, ALB).
	LambdaAdapterRouter LambdaAdapter = "router"
)

// NormalizeEmailProvider trims and lowercases a provider identifier.
func NormalizeEmailProvider(p string) EmailProvider {
	return EmailProvider(strings.ToLower(strings.TrimSpace(p)))
}

// NormalizeLambdaAdapter trims and lowercases an adapter identifier.
func NormalizeLambdaAdapter(a string) LambdaAdapter {
	return LambdaAdapter(strings.ToLower(strings.TrimSpace(a)))
}
