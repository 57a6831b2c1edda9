package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the subset of access-token claims the tool cares about.
// Tokens are parsed without signature verification: they were just issued
// to us by the authority and are only inspected for display and
// enrichment, never for authorization decisions.
type tokenClaims struct {
	Name          string
	PrincipalName string
	TenantID      string
	Expiry        time.Time
	Roles         []string
	IsGuest       bool
}

func parseTokenClaims(accessToken string) tokenClaims {
	var out tokenClaims

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return out
	}

	out.Name = stringClaim(claims, "name")
	out.PrincipalName = stringClaim(claims, "upn")
	if out.PrincipalName == "" {
		out.PrincipalName = stringClaim(claims, "preferred_username")
	}
	if out.PrincipalName == "" {
		out.PrincipalName = stringClaim(claims, "unique_name")
	}
	out.TenantID = stringClaim(claims, "tid")

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Expiry = exp.Time
	}

	out.Roles = append(out.Roles, stringSliceClaim(claims, "roles")...)
	out.Roles = append(out.Roles, stringSliceClaim(claims, "wids")...)

	// acct=1 marks a guest of the tenant the token was issued for.
	switch v := claims["acct"].(type) {
	case string:
		out.IsGuest = v == "1"
	case float64:
		out.IsGuest = v == 1
	}

	return out
}

// InspectToken returns the directory role claims and guest flag carried
// by an access token, for tenant enrichment during discovery.
func InspectToken(accessToken string) (roles []string, isGuest bool) {
	c := parseTokenClaims(accessToken)
	return c.Roles, c.IsGuest
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceClaim(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
