// ABOUTME: Customer and flight record types from the mock dataset
// ABOUTME: JSON field names match the data files on disk
package models

// Flight is one scheduled flight record.
type Flight struct {
	FlightID    string `json:"flight_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Status      string `json:"status"`
}

// Customer is one customer record. Flight is the joined flight for
// FlightID, nil when the reference does not resolve.
type Customer struct {
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	LoyaltyTier string  `json:"loyalty_tier"`
	FlightID    string  `json:"flight_id"`
	Flight      *Flight `json:"flight,omitempty"`
}
