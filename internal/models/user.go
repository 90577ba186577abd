package models

import (
	"strings"
	"time"
)

const (
	DefaultRole      = "Member"
	MemberActive     = "Active"
	MemberInvited    = "Invited"
	UnassignedMarker = "Unassigned"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	LoginID      string    `json:"loginId"`
	PasswordHash string    `json:"-"` // never serialized
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserInput carries the plain password; it is hashed before it reaches a repository.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Status   string `json:"status,omitempty"`
}

type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	LoginID  *string `json:"loginId,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

func (in UserInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return NewError(ErrCodeInvalid, "name is required")
	case strings.TrimSpace(in.Email) == "":
		return NewError(ErrCodeInvalid, "email is required")
	case strings.TrimSpace(in.LoginID) == "":
		return NewError(ErrCodeInvalid, "loginId is required")
	case in.Password == "":
		return NewError(ErrCodeInvalid, "password is required")
	}
	return nil
}

// NewUser builds a user with defaults; the caller sets PasswordHash.
func NewUser(in UserInput) User {
	u := User{
		Name:    strings.TrimSpace(in.Name),
		Email:   NormalizeEmail(in.Email),
		LoginID: strings.TrimSpace(in.LoginID),
		Role:    in.Role,
		Avatar:  in.Avatar,
		Status:  in.Status,
	}
	if u.Role == "" {
		u.Role = DefaultRole
	}
	if u.Status == "" {
		u.Status = MemberActive
	}
	return u
}

// NormalizeEmail trims and lowercases an address. Stores compare emails
// byte for byte, so every write goes through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Apply merges every field except the password, which needs hashing first.
func (u *User) Apply(p UserPatch) error {
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return NewError(ErrCodeInvalid, "name is required")
		}
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return NewError(ErrCodeInvalid, "email is required")
		}
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.LoginID != nil {
		if strings.TrimSpace(*p.LoginID) == "" {
			return NewError(ErrCodeInvalid, "loginId is required")
		}
		u.LoginID = strings.TrimSpace(*p.LoginID)
	}
	if p.Password != nil && *p.Password == "" {
		return NewError(ErrCodeInvalid, "password is required")
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	return nil
}
