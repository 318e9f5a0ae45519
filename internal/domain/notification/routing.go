package notification

import (
	"net/url"
	"strings"

	"anilink/internal/domain"
)

// anyRole is the fallback row used when no role-specific route exists.
const anyRole domain.UserRole = "*"

type pathTemplate func(id string) string

type routeKey struct {
	entity EntityType
	role   domain.UserRole
}

func withQueryID(prefix string) pathTemplate {
	return func(id string) string { return prefix + url.QueryEscape(id) }
}

func withPathID(prefix string) pathTemplate {
	return func(id string) string { return prefix + url.PathEscape(id) }
}

// routeTable maps (entity, role) to a deep link. A nil template is an
// explicit "no destination" entry.
var routeTable = map[routeKey]pathTemplate{
	{EntityBooking, domain.RoleVet}: withQueryID("/vet/appointments?status=requested&focus="),
	{EntityBooking, anyRole}:        withQueryID("/appointments?status=upcoming&focus="),

	{EntityOrder, domain.RoleSeller}: withQueryID("/seller/orders?focus="),
	{EntityOrder, anyRole}:           withPathID("/orders/"),

	{EntityCase, domain.RoleVet}: withQueryID("/vet/cases?focus="),
	{EntityCase, anyRole}:        withQueryID("/records?focusCase="),

	{EntityScan, domain.RoleOwner}: withQueryID("/records?focusScan="),
	{EntityScan, anyRole}:          nil,

	{EntityProduct, domain.RoleSeller}: withQueryID("/seller/products?focus="),
	{EntityProduct, anyRole}:           withPathID("/marketplace/"),

	{EntitySystem, anyRole}: nil,
}

// Router resolves notifications to in-app paths.
type Router struct {
	origin *url.URL
}

// NewRouter builds a router for the application served at origin
// (e.g. "https://app.anilink.example"). An empty or invalid origin means
// absolute action URLs are never treated as same-origin.
func NewRouter(origin string) *Router {
	r := &Router{}
	if u, err := url.Parse(strings.TrimSpace(origin)); err == nil && u.Scheme != "" && u.Host != "" {
		r.origin = u
	}
	return r
}

// Href returns the path a notification should open for a viewer with role.
// The bool is false when no sensible destination exists.
func (r *Router) Href(n Notification, role string) (string, bool) {
	if href, ok := r.actionHref(n.ActionURL); ok {
		return href, true
	}

	entity := parseEntityType(n.EntityType)
	id := n.TargetID()
	if entity == "" || id == "" {
		return "", false
	}

	tpl, ok := routeTable[routeKey{entity, domain.ParseRole(role)}]
	if !ok {
		tpl, ok = routeTable[routeKey{entity, anyRole}]
	}
	if !ok || tpl == nil {
		return "", false
	}
	return tpl(id), true
}

func (r *Router) actionHref(actionURL string) (string, bool) {
	raw := strings.TrimSpace(actionURL)
	if raw == "" {
		return "", false
	}
	if strings.HasPrefix(raw, "/") {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || r.origin == nil || !r.sameOrigin(u) {
		return "", false
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path, true
}

func (r *Router) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, r.origin.Scheme) &&
		strings.EqualFold(hostWithPort(u), hostWithPort(r.origin))
}

func hostWithPort(u *url.URL) string {
	port := u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "http":
			port = "80"
		case "https":
			port = "443"
		}
	}
	return u.Hostname() + ":" + port
}
