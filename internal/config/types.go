package config

import "time"

// ClientctlConfig is the top-level configuration structure for clientctl.
type ClientctlConfig struct {
	// Endpoint is the URL of the client page. REST paths such as "api" and
	// "api/42" are resolved relative to it, the way a browser resolves them.
	Endpoint string `yaml:"endpoint"`
	// ActorID is the user id sent as createdBy/updatedBy on writes.
	ActorID int `yaml:"actorId"`
	// PageSize is the initial number of grid rows per page.
	PageSize int `yaml:"pageSize"`
	// RequestTimeout bounds each HTTP request. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"`
	// CSRF controls the anti-forgery header attached to write requests.
	CSRF CSRFConfig `yaml:"csrf"`
}

// CSRFConfig describes where the anti-forgery header name and token come from.
type CSRFConfig struct {
	// Discover reads the _csrf and _csrf_header meta tags from the endpoint page at startup.
	Discover bool `yaml:"discover"`
	// Header is a static header name; together with Token it skips discovery.
	Header string `yaml:"header,omitempty"`
	// Token is a static token value.
	Token string `yaml:"token,omitempty"`
}

// HasStaticToken reports whether both header name and token were configured.
func (c CSRFConfig) HasStaticToken() bool {
	return c.Header != "" && c.Token != ""
}
