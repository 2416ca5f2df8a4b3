package model

import "time"

// Role names stored in users.role.  The model is a flat enumeration,
// not a hierarchy; endpoint-level middleware decides who may call what.
const (
	RoleAdmin    = "Admin"
	RoleCashier  = "Cashier"
	RoleCustomer = "Customer"
)

// User represents an application user record as stored in the `users`
// table.  Primary keys are UUID strings.  A single refresh token per
// user lives directly on the row; issuing a new one overwrites (and
// thereby revokes) the previous session.  Deletion is soft: the row
// stays but is_deleted flips and all lookups skip it.
//
// Fields:
//  ID                    – UUID primary key.
//  Email                 – email address, unique among non-deleted rows
//                          (enforced at the application layer).
//  Names                 – display name.
//  Phone                 – contact phone number.
//  Role                  – Admin, Cashier or Customer.
//  PasswordHash          – bcrypt hash of the password.
//  RefreshToken          – currently active refresh token, empty when logged out.
//  RefreshTokenExpiresAt – expiry of the stored refresh token (nil when none).
//  IsDeleted             – soft delete flag.
//  CreatedAt             – timestamp of creation.
//  ModifiedAt            – timestamp of last update.
type User struct {
	ID                    string     // users.id (CHAR(36))
	Email                 string     // users.email
	Names                 string     // users.names
	Phone                 string     // users.phone
	Role                  string     // users.role
	PasswordHash          string     // users.password_hash
	RefreshToken          string     // users.refresh_token ('' when cleared)
	RefreshTokenExpiresAt *time.Time // users.refresh_token_expires_at (nullable)
	IsDeleted             bool       // users.is_deleted
	CreatedAt             time.Time  // users.created_at
	ModifiedAt            time.Time  // users.modified_at
}
