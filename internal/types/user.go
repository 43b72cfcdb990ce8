// Package types provides shared records used across multiple packages.
// This package has no dependencies on other userboard packages to avoid import cycles.
package types

import "strings"

// Address is a user's postal address.
type Address struct {
	ID      string `json:"id" yaml:"id"`
	UserID  string `json:"user_id" yaml:"user_id"`
	Street  string `json:"street" yaml:"street"`
	State   string `json:"state" yaml:"state"`
	City    string `json:"city" yaml:"city"`
	Zipcode string `json:"zipcode" yaml:"zipcode"`
}

// Format renders the address the way the users table shows it.
func (a Address) Format() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.State, a.City, a.Zipcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// User is a registered user. Address is nil when the user has none.
type User struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Username string   `json:"username" yaml:"username"`
	Email    string   `json:"email" yaml:"email"`
	Phone    string   `json:"phone" yaml:"phone"`
	Address  *Address `json:"address,omitempty" yaml:"address,omitempty"`
}
