// ABOUTME: Customer and flight lookup over the mock JSON dataset
// ABOUTME: Customer-not-found means no personalization, never an error
package customers

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/skyway/concierge/internal/models"
)

// Data file names inside the data directory
const (
	FlightsFile   = "flights.json"
	CustomersFile = "customers.json"
)

// Directory resolves customer context for personalization. Records are
// loaded once at construction; the dataset is small and static.
type Directory struct {
	customers map[string]models.Customer
	flights   map[string]models.Flight
}

// Load reads flights.json and customers.json from dataDir. A missing
// file yields an empty dataset for that record type, not an error.
func Load(dataDir string) (*Directory, error) {
	var flights []models.Flight
	if err := readJSON(filepath.Join(dataDir, FlightsFile), &flights); err != nil {
		return nil, err
	}

	var custs []models.Customer
	if err := readJSON(filepath.Join(dataDir, CustomersFile), &custs); err != nil {
		return nil, err
	}

	d := &Directory{
		customers: make(map[string]models.Customer, len(custs)),
		flights:   make(map[string]models.Flight, len(flights)),
	}
	for _, f := range flights {
		d.flights[f.FlightID] = f
	}
	for _, c := range custs {
		d.customers[c.CustomerID] = c
	}
	return d, nil
}

// GetCustomer looks up a customer and joins their current flight.
// The second return reports whether the customer exists.
func (d *Directory) GetCustomer(id string) (*models.Customer, bool) {
	c, ok := d.customers[id]
	if !ok {
		return nil, false
	}
	if f, ok := d.flights[c.FlightID]; ok {
		flight := f
		c.Flight = &flight
	}
	return &c, true
}

// GetFlight looks up a flight by ID.
func (d *Directory) GetFlight(id string) (*models.Flight, bool) {
	f, ok := d.flights[id]
	if !ok {
		return nil, false
	}
	return &f, true
}

// Len reports the number of known customers.
func (d *Directory) Len() int { return len(d.customers) }

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: data file %s not found, continuing without it", path)
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}
