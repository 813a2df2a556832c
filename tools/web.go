package tools

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parseURL splits a URL into its components.
func parseURL(ctx context.Context, args map[string]any) (any, error) {
	raw, err := stringArg(args, "url")
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, invalidArg("%v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, invalidArg("url must be absolute")
	}

	query := make(map[string][]string, len(u.Query()))
	for k, v := range u.Query() {
		query[k] = v
	}
	password, _ := u.User.Password()

	return map[string]any{
		"protocol": u.Scheme,
		"username": u.User.Username(),
		"password": password,
		"hostname": u.Hostname(),
		"port":     u.Port(),
		"path":     u.Path,
		"query":    query,
		"fragment": u.Fragment,
	}, nil
}

// parseJWT decodes the header and claims of a JWT without verifying the
// signature. Registered time claims are also reported as RFC 3339 strings.
func parseJWT(ctx context.Context, args map[string]any) (any, error) {
	raw, err := stringArg(args, "token")
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return nil, invalidArg("token must have three dot-separated parts")
	}

	claims := jwt.MapClaims{}
	token, parts, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return nil, invalidArg("%v", err)
	}

	out := map[string]any{
		"header":    token.Header,
		"payload":   map[string]any(claims),
		"signature": parts[2],
	}
	for key, get := range map[string]func() (*jwt.NumericDate, error){
		"issuedAt":  claims.GetIssuedAt,
		"expiresAt": claims.GetExpirationTime,
		"notBefore": claims.GetNotBefore,
	} {
		if d, err := get(); err == nil && d != nil {
			out[key] = d.UTC().Format(time.RFC3339)
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out["expired"] = exp.Before(time.Now())
	}
	return out, nil
}
