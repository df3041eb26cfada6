package domain

import "time"

type User struct {
	Id        UserId
	Handle    Handle
	Email     Email
	PassHash  string
	Role      string
	CreatedAt time.Time
}

type Credentials struct {
	Handle   Handle
	Email    Email
	Password Password
}

// UserRef points at a user either by id or by handle.
// Exactly one field must be set.
type UserRef struct {
	Id     UserId
	Handle Handle
}
