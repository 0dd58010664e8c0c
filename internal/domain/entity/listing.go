package entity

import "time"

// ListingStatus lifecycle of a food listing. Expired is never stored, it is
// derived from FreshUntil.
type ListingStatus string

const (
	ListingAvailable ListingStatus = "Available"
	ListingClaimed   ListingStatus = "Claimed"
	ListingExpired   ListingStatus = "Expired"
)

// FoodListing surplus food offered by a restaurant.
type FoodListing struct {
	ID                int64         `json:"id"`
	RestaurantID      int64         `json:"restaurant_id"`
	FoodItem          string        `json:"food_item"`
	Quantity          string        `json:"quantity"`
	Status            ListingStatus `json:"status"`
	CurrentStatus     ListingStatus `json:"current_status,omitempty"`
	FreshUntil        time.Time     `json:"fresh_until"`
	ClaimedByID       int64         `json:"claimed_by_id,omitempty"`
	Timestamp         time.Time     `json:"timestamp"`
	RestaurantName    string        `json:"restaurant_name,omitempty"`
	RestaurantAddress string        `json:"restaurant_address,omitempty"`
}

// StatusAt the status a viewer sees at now.
func (l FoodListing) StatusAt(now time.Time) ListingStatus {
	if now.After(l.FreshUntil) {
		return ListingExpired
	}
	return l.Status
}

// ListingDraft a listing parsed from an import file, before it is stored.
// FreshHours of zero means the freshness has to be estimated.
type ListingDraft struct {
	FoodItem   string
	Quantity   string
	FreshHours int
}

// Dashboard data shown to a logged in user, shaped by account type.
type Dashboard struct {
	AccountType AccountType   `json:"account_type"`
	Listings    []FoodListing `json:"listings"`
	Restaurants []Contact     `json:"restaurants,omitempty"`
	NGOs        []Contact     `json:"ngos,omitempty"`
}
