package entity

import (
	"fmt"
	"strings"
)

// AccountType role of a registered user
type AccountType string

const (
	AccountRestaurant AccountType = "restaurant"
	AccountNGO        AccountType = "ngo"
	AccountOldAgeHome AccountType = "old-age-home"
	AccountAdmin      AccountType = "admin"
)

// ParseAccountType validates a raw account type from a form.
func ParseAccountType(raw string) (AccountType, error) {
	switch t := AccountType(strings.ToLower(strings.TrimSpace(raw))); t {
	case AccountRestaurant, AccountNGO, AccountOldAgeHome, AccountAdmin:
		return t, nil
	default:
		return "", fmt.Errorf("unknown account type %q", raw)
	}
}

// IsRecipient NGOs and old-age homes can claim food.
func (t AccountType) IsRecipient() bool {
	return t == AccountNGO || t == AccountOldAgeHome
}

// User registered account
type User struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	PasswordHash    string      `json:"-"`
	AccountType     AccountType `json:"account_type"`
	Address         string      `json:"address"`
	Phone           string      `json:"phone_number"`
	ProfileComplete bool        `json:"is_profile_complete"`
}

// Contact what the admin dashboard shows about a user.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone_number"`
}

// Contact projects the user into its public contact card.
func (u User) Contact() Contact {
	return Contact{Name: u.Name, Email: u.Email, Address: u.Address, Phone: u.Phone}
}
