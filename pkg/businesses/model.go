package businesses

// State is the lifecycle of both businesses and profile grants.
// PENDING transitions to APPROVED or REJECTED, then stays terminal.
type State string

const (
	StatePending  State = "PENDING"
	StateApproved State = "APPROVED"
	StateRejected State = "REJECTED"
)

// Roles a profile grant may carry.
const (
	RolePlatformAdmin = "PLATFORM_ADMIN"
	RoleBusinessAdmin = "BUSINESS_ADMIN"
	RoleSaler         = "SALER"
	RoleDelivery      = "DELIVERY"
	RoleDefault       = "DEFAULT"
)

// Business is a tenant. Keyed by display name; PublicID is the URL-safe
// slug used as the routing segment. Never hard-deleted.
type Business struct {
	ID                   string // uuid
	PublicID             string // slug (acme, acme-1b9f03aa)
	Name                 string
	Description          string
	AdminEmail           string
	AutoAcceptDeliveries bool
	State                State
}

// User holds platform-side account material keyed by email. Credentials
// live with the identity provider; only the two-factor secret is ours.
type User struct {
	Email           string
	TwoFactorSecret string
}

// Profile is an approval record binding a user to a role within one
// business. Identity is the (email, business, role) triple.
type Profile struct {
	Email    string
	Business string
	Role     string
	State    State
}
