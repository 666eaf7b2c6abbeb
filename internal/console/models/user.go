// Package models defines the data exchanged with the warehouse backend and
// the forms the console validates before sending.
package models

import "strconv"

// User is both the cached profile snapshot and an employee row.
// The backend spells the id "ID" on some endpoints; encoding/json matches
// keys case-insensitively, so one tag covers both.
type User struct {
	ID        int64  `json:"id" yaml:"id"`
	Email     string `json:"email" yaml:"email"`
	Firstname string `json:"firstname" yaml:"firstname"`
	Lastname  string `json:"lastname" yaml:"lastname"`
	INN       string `json:"inn" yaml:"inn"`
	Phone     string `json:"phone" yaml:"phone"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty" yaml:"is_admin,omitempty"`
	Blocked   bool   `json:"blocked" yaml:"blocked"`
	Avatar    string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}

// Fields lists the values the employee table shows and search matches.
func (u User) Fields() []string {
	return []string{
		strconv.FormatInt(u.ID, 10),
		u.Email, u.Firstname, u.Lastname, u.Phone, u.INN,
	}
}

// SignInResponse is what /users/signin returns: the token plus the profile.
type SignInResponse struct {
	Token string `json:"token"`
	User
}

// AvatarResponse is returned by the avatar upload endpoint.
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}
