package models

import "strconv"

// User is a user profile as returned by the profile, search and admin
// endpoints.
type User struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Surname      string `json:"surname,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Age          int    `json:"age,omitempty"`
	Username     string `json:"username,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	HashPassword string `json:"hash_password,omitempty"`
}

// IDString returns the identifier in the form used in URL paths.
func (u *User) IDString() string {
	if u == nil || u.ID == 0 {
		return ""
	}
	return strconv.FormatInt(u.ID, 10)
}

// DisplayName is "Name Surname (username)", dropping the empty parts.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	full := u.Name
	if u.Surname != "" {
		if full != "" {
			full += " "
		}
		full += u.Surname
	}
	switch {
	case full == "":
		return u.Username
	case u.Username == "":
		return full
	default:
		return full + " (" + u.Username + ")"
	}
}

// Upload is an in-memory file attached to a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

// SignUpForm carries the registration fields. Password is sent as
// hash_password; hashing happens server-side.
type SignUpForm struct {
	Name     string
	Surname  string
	Email    string
	Phone    string
	Age      string
	Username string
	Password string
	Avatar   *Upload
}

// AuthResult is the outcome of a sign-in or sign-up. Token is empty when the
// server did not issue one.
type AuthResult struct {
	User  *User
	Token string
}
