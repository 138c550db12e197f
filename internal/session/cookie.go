package session

import (
	"fmt"
	"strings"
)

const DefaultCookieName = "sessionid"

type SameSite int

const (
	SameSiteStrict SameSite = iota
	SameSiteLax
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	default:
		return "Lax"
	}
}

// ParseSameSite accepts the attribute value in any letter case.
func ParseSameSite(v string) (SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return SameSiteStrict, nil
	case "lax", "":
		return SameSiteLax, nil
	case "none":
		return SameSiteNone, nil
	default:
		return SameSiteLax, fmt.Errorf("unknown same_site value %q", v)
	}
}

// CookieOptions controls the attributes of the issued session cookie.
type CookieOptions struct {
	Name     string
	Secure   bool
	HTTPOnly bool
	SameSite SameSite
}

// buildCookieHeader renders "name=id[; HttpOnly][; Secure]; SameSite=x; Path=/".
// Segment order is fixed.
func buildCookieHeader(opts CookieOptions, id string) string {
	var sb strings.Builder
	sb.WriteString(opts.Name)
	sb.WriteByte('=')
	sb.WriteString(id)
	if opts.HTTPOnly {
		sb.WriteString("; HttpOnly")
	}
	if opts.Secure {
		sb.WriteString("; Secure")
	}
	sb.WriteString("; SameSite=")
	sb.WriteString(opts.SameSite.String())
	sb.WriteString("; Path=/")
	return sb.String()
}

// extractCookieValue finds the first "name=" anywhere in header and returns
// what follows up to ';', ' ' or the end. The match is a plain substring
// search, so "xname=" also matches "name=".
func extractCookieValue(header, name string) string {
	token := name + "="
	idx := strings.Index(header, token)
	if idx < 0 {
		return ""
	}
	rest := header[idx+len(token):]
	if end := strings.IndexAny(rest, "; "); end >= 0 {
		return rest[:end]
	}
	return rest
}
