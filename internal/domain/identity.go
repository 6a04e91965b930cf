package domain

// Agent is the internal record for support staff, mapped one-to-one from a
// platform user identity.
type Agent struct {
	ID             int64
	PlatformUserID int64
}

// User is the internal record for a ticket requester, mapped one-to-one
// from a platform user identity and linked to an organization.
type User struct {
	ID             int64
	PlatformUserID int64
	OrganizationID int64
}
