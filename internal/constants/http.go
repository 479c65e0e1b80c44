package constants

import "time"

// ContentTypeHeader is the HTTP Content-Type header name.
const ContentTypeHeader = "Content-Type"

// ContentTypeJSON is the media type of every response body.
const ContentTypeJSON = "application/json"

// CORS response header names.
const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
)

// CORS response header values. They are sent on every response path.
const (
	CORSAllowOrigin      = "*"
	CORSAllowMethods     = "OPTIONS,POST"
	CORSAllowHeaders     = "Content-Type"
	CORSAllowCredentials = "true"
)

// HTTP routes served by the router.
const (
	ContactPath = "/contact"
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

// DevServerPort is the default port of the local development server.
const DevServerPort = "56212"

// ServerReadTimeout is the HTTP server read timeout
const ServerReadTimeout = 15 * time.Second

// ServerWriteTimeout is the HTTP server write timeout
const ServerWriteTimeout = 15 * time.Second

// ServerIdleTimeout is the HTTP server idle timeout
const ServerIdleTimeout = 60 * time.Second

// ServerShutdownTimeout is the timeout for graceful server shutdown
const ServerShutdownTimeout = 5 * time.Second

// SubmitClientTimeout bounds a single `contactform submit` HTTP call.
const SubmitClientTimeout = 30 * time.Second
