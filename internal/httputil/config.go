package httputil

import "fmt"

// HTTPClientConfig carries the auth settings for an outbound client, as
// declared in a palette manifest.
type HTTPClientConfig struct {
	BasicAuth   *BasicAuth `json:"basicAuth,omitempty" toml:"basicAuth"`
	BearerToken string     `json:"bearerToken,omitempty" toml:"bearerToken"`
}

func (c *HTTPClientConfig) Validate() error {
	if c.BasicAuth != nil && len(c.BearerToken) > 0 {
		return fmt.Errorf("at most one of basic_auth and bearer_token must be configured")
	}
	return nil
}

type BasicAuth struct {
	Username string `json:"username" toml:"username"`
	Password string `json:"password,omitempty" toml:"password"`
}
