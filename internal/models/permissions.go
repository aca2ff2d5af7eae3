package models

// Permission is an atomic capability granted through a role.
// Typed constants replace ad-hoc string comparison at call sites.
type Permission string

const (
	PermDashboardView   Permission = "dashboard.view"
	PermClientsRead     Permission = "clients.read"
	PermClientsWrite    Permission = "clients.write"
	PermLeadsRead       Permission = "leads.read"
	PermLeadsWrite      Permission = "leads.write"
	PermQuotationsRead  Permission = "quotations.read"
	PermQuotationsWrite Permission = "quotations.write"
	PermUsersManage     Permission = "users.manage"

	// Wildcard grants every permission (admin only)
	PermAll Permission = "*"
)

// knownPermissions is the whitelist of valid permission tokens.
var knownPermissions = map[Permission]bool{
	PermDashboardView:   true,
	PermClientsRead:     true,
	PermClientsWrite:    true,
	PermLeadsRead:       true,
	PermLeadsWrite:      true,
	PermQuotationsRead:  true,
	PermQuotationsWrite: true,
	PermUsersManage:     true,
	PermAll:             true,
}

// IsValidPermission checks a token against the whitelist.
func IsValidPermission(p Permission) bool {
	return knownPermissions[p]
}

// PermissionSet is a resolved set of capabilities for a role.
type PermissionSet map[Permission]bool

// ParsePermissions converts stored permission tokens into a PermissionSet,
// dropping anything not on the whitelist. Unknown tokens grant nothing.
func ParsePermissions(tokens []string) PermissionSet {
	set := make(PermissionSet, len(tokens))
	for _, t := range tokens {
		p := Permission(t)
		if knownPermissions[p] {
			set[p] = true
		}
	}
	return set
}

// Has reports whether the set grants the required permission.
// The wildcard grants everything.
func (s PermissionSet) Has(required Permission) bool {
	if s[PermAll] {
		return true
	}
	return s[required]
}

// Tokens returns the set as a sorted-independent slice of raw tokens.
func (s PermissionSet) Tokens() []string {
	tokens := make([]string, 0, len(s))
	for p := range s {
		tokens = append(tokens, string(p))
	}
	return tokens
}
