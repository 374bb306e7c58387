// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// Role is the panel role assigned to a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleReseller Role = "reseller"
)

// Status is the lifecycle state of a user account.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// User is the authenticated panel account as returned by the backend.
// Permissions is an open mapping owned by the server; the client treats
// it as opaque.
type User struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Role        Role           `json:"role"`
	Status      Status         `json:"status"`
	MFAEnabled  bool           `json:"mfa_enabled"`
	Permissions map[string]any `json:"permissions,omitempty"`
}
