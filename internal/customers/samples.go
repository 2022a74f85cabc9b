// ABOUTME: Embedded sample flight and customer records for local development
// ABOUTME: Mirrors the mock dataset shape served to the engine
package customers

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/skyway/concierge/internal/models"
)

// SampleFlights is the bootstrap flight dataset.
var SampleFlights = []models.Flight{
	{FlightID: "FL001", Origin: "NYC", Destination: "LAX", Departure: "2025-03-04 10:00", Status: "On Time"},
	{FlightID: "FL002", Origin: "LAX", Destination: "CHI", Departure: "2025-03-04 12:30", Status: "Delayed"},
	{FlightID: "FL003", Origin: "MIA", Destination: "DFW", Departure: "2025-03-04 15:45", Status: "Cancelled"},
}

// SampleCustomers is the bootstrap customer dataset.
var SampleCustomers = []models.Customer{
	{CustomerID: "C001", Name: "Jane Doe", Email: "jane@example.com", FlightID: "FL001", LoyaltyTier: "Gold"},
	{CustomerID: "C002", Name: "John Smith", Email: "john@example.com", FlightID: "FL002", LoyaltyTier: "Silver"},
	{CustomerID: "C003", Name: "Alice Brown", Email: "alice@example.com", FlightID: "FL003", LoyaltyTier: "Standard"},
}

// WriteSamples writes the sample dataset into dataDir, creating the
// directory if needed.
func WriteSamples(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dataDir, FlightsFile), SampleFlights); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dataDir, CustomersFile), SampleCustomers)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
