package config

const (
	// DefaultEndpoint is used when neither config file, environment nor flags name one.
	DefaultEndpoint = "http://localhost:8080/client/"

	// DefaultActorID is the placeholder user id until writes carry an authenticated identity.
	DefaultActorID = 1

	// DefaultPageSize matches the grid's initial page length.
	DefaultPageSize = 10
)

// GetDefaultConfig returns the default configuration for clientctl.
func GetDefaultConfig() ClientctlConfig {
	return ClientctlConfig{
		Endpoint: DefaultEndpoint,
		ActorID:  DefaultActorID,
		PageSize: DefaultPageSize,
		CSRF: CSRFConfig{
			Discover: true,
		},
	}
}
