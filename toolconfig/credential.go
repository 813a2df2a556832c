package toolconfig

import (
	"net/http"
	"os"
	"strings"
)

// CredentialSource yields the current session credential. An empty token
// means the request is sent anonymously.
type CredentialSource interface {
	Token() string
}

// StaticCredential is a fixed token.
type StaticCredential string

// Token returns the token.
func (s StaticCredential) Token() string {
	return string(s)
}

// EnvCredential reads the token from an environment variable on every call.
type EnvCredential string

// Token returns the trimmed value of the variable.
func (e EnvCredential) Token() string {
	if e == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(string(e)))
}

// credentialRoundTripper sets the bearer Authorization header on outgoing
// requests that do not already carry one.
type credentialRoundTripper struct {
	base       http.RoundTripper
	credential CredentialSource
}

func (c *credentialRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := c.base
	if base == nil {
		base = http.DefaultTransport
	}
	if c.credential == nil || req.Header.Get("Authorization") != "" {
		return base.RoundTrip(req)
	}
	token := strings.TrimSpace(c.credential.Token())
	if token == "" {
		return base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}

func httpClientWithCredential(base *http.Client, credential CredentialSource) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	client := *base
	client.Transport = &credentialRoundTripper{
		base:       base.Transport,
		credential: credential,
	}
	return &client
}
