// Package catalog holds the static trip data: flights, passengers, lodging,
// bus legs, the connection timeline and travel tips.
//
// A Catalog is read-only once loaded. The embedded default can be replaced
// at startup by a TOML file, see LoadFile.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"viagens/internal/core"
)

// Bus scenarios for the outbound domestic leg.
const (
	ScenarioDirect   Scenario = "direto_sp"
	ScenarioViaLeme  Scenario = "via_leme"
	DefaultScenario           = ScenarioDirect
	travelersPerTrip          = 2
)

type (
	Scenario string

	FlightLeg struct {
		Route     string `json:"route" toml:"route"`
		Airline   string `json:"airline" toml:"airline"`
		Flight    string `json:"flight" toml:"flight"`
		Departure string `json:"departure" toml:"departure"`
		Arrival   string `json:"arrival" toml:"arrival"`
		Layover   string `json:"layover" toml:"layover"`
		Status    string `json:"status" toml:"status"`
		Details   string `json:"details" toml:"details"`
	}

	InternationalFlights struct {
		Outbound FlightLeg `json:"ida" toml:"outbound"`
		Return   FlightLeg `json:"volta" toml:"return"`
	}

	Passenger struct {
		Name    string `json:"name" toml:"name"`
		IDDoc   string `json:"idDoc" toml:"id_doc"`
		ETicket string `json:"eTicket" toml:"e_ticket"`
	}

	TicketDetails struct {
		BookingID   string      `json:"bookingId" toml:"booking_id"`
		CheckInCode string      `json:"checkInCode" toml:"check_in_code"`
		Passengers  []Passenger `json:"passengers" toml:"passengers"`
	}

	BusLeg struct {
		ID    string  `json:"id" toml:"id"`
		From  string  `json:"from" toml:"from"`
		To    string  `json:"to" toml:"to"`
		Time  string  `json:"time" toml:"time"`
		Price float64 `json:"price" toml:"price"`
		Date  string  `json:"date" toml:"date"`
	}

	BusLogistics struct {
		ViaLeme  []BusLeg `json:"via_leme" toml:"via_leme"`
		DirectSP []BusLeg `json:"direto_sp" toml:"direto_sp"`
		Return   []BusLeg `json:"retorno" toml:"return"`
	}

	TimelineStep struct {
		Time      string `json:"time" toml:"time"`
		Task      string `json:"task" toml:"task"`
		Warning   bool   `json:"warning,omitempty" toml:"warning"`
		Highlight bool   `json:"highlight,omitempty" toml:"highlight"`
	}

	FlightTimes struct {
		Date    string `json:"date" toml:"date"`
		Time    string `json:"time" toml:"time"`
		Arrival string `json:"arrival" toml:"arrival"`
	}

	// FlightDeal is the regional round trip between Johannesburg and Cape Town.
	FlightDeal struct {
		Company        string      `json:"company" toml:"company"`
		RoundTripPrice float64     `json:"roundTripPrice" toml:"round_trip_price"`
		Outbound       FlightTimes `json:"outbound" toml:"outbound"`
		Return         FlightTimes `json:"return" toml:"return"`
	}

	Tip struct {
		Title string `json:"title" toml:"title"`
		Icon  string `json:"icon" toml:"icon"`
		Text  string `json:"text" toml:"text"`
	}

	Catalog struct {
		Flights        InternationalFlights `json:"voosInternacionais" toml:"flights"`
		Ticket         TicketDetails        `json:"passageiros" toml:"ticket"`
		Regions        []core.Region        `json:"regioes" toml:"regions"`
		Accommodations []core.LodgingOption `json:"hoteis" toml:"accommodations"`
		Bus            BusLogistics         `json:"onibusBrasil" toml:"bus"`
		Timeline       []TimelineStep       `json:"cronogramaConexao" toml:"timeline"`
		RegionalFlight FlightDeal           `json:"vooRegional" toml:"regional_flight"`
		Tips           []Tip                `json:"dicas" toml:"tips"`
	}
)

var (
	ErrUnknownScenario = errors.New("unknown bus scenario")
	ErrUnknownStay     = errors.New("unknown lodging option")
)

func (s Scenario) IsValid() bool {
	return s == ScenarioDirect || s == ScenarioViaLeme
}

// ParseScenario maps an empty string to DefaultScenario.
func ParseScenario(s string) (Scenario, error) {
	if s == "" {
		return DefaultScenario, nil
	}
	sc := Scenario(s)
	if !sc.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScenario, s)
	}
	return sc, nil
}

// LoadFile reads a TOML catalog. An empty path returns the embedded default.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks referential integrity between lodging options and regions.
func (c *Catalog) Validate() error {
	regions := make(map[string]struct{}, len(c.Regions))
	for _, r := range c.Regions {
		if r.ID == "" {
			return errors.New("catalog: region without id")
		}
		regions[r.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(c.Accommodations))
	for _, a := range c.Accommodations {
		if a.ID == "" {
			return errors.New("catalog: lodging option without id")
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("catalog: duplicate lodging option %q", a.ID)
		}
		seen[a.ID] = struct{}{}
		if _, ok := regions[a.RegionID]; !ok {
			return fmt.Errorf("catalog: lodging option %q references unknown region %q", a.ID, a.RegionID)
		}
	}
	return nil
}

func (c *Catalog) Region(id string) (core.Region, bool) {
	for _, r := range c.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return core.Region{}, false
}

func (c *Catalog) Stay(id string) (core.LodgingOption, bool) {
	for _, a := range c.Accommodations {
		if a.ID == id {
			return a, true
		}
	}
	return core.LodgingOption{}, false
}

// OutboundLegs returns the domestic legs to the airport for a scenario.
func (c *Catalog) OutboundLegs(s Scenario) []BusLeg {
	if s == ScenarioViaLeme {
		return c.Bus.ViaLeme
	}
	return c.Bus.DirectSP
}

// BusTotal is the price of all domestic legs (outbound for the scenario plus
// return) for both travelers.
func (c *Catalog) BusTotal(s Scenario) float64 {
	var sum float64
	for _, b := range c.OutboundLegs(s) {
		sum += b.Price
	}
	for _, b := range c.Bus.Return {
		sum += b.Price
	}
	return sum * travelersPerTrip
}

// BusEntry builds the ledger entry for the domestic bus legs.
func (c *Catalog) BusEntry(s Scenario) (core.NewEntry, error) {
	if !s.IsValid() {
		return core.NewEntry{}, fmt.Errorf("%w: %q", ErrUnknownScenario, s)
	}
	return core.NewEntry{
		Category:    core.CategoryGroundTransport,
		Description: fmt.Sprintf("Brasil Terrestre (%s) Casal", s),
		Date:        "06/02",
		Total:       c.BusTotal(s),
		Notes:       "RJ-SP-GRU",
	}, nil
}

// RegionalFlightEntry builds the ledger entry for the JNB-CPT round trip.
func (c *Catalog) RegionalFlightEntry() core.NewEntry {
	return core.NewEntry{
		Category:    core.CategoryFlight,
		Description: "JNB-CPT SAA (Casal)",
		Date:        c.RegionalFlight.Outbound.Date,
		Total:       c.RegionalFlight.RoundTripPrice * travelersPerTrip,
		Notes:       "Confirmado",
	}
}

// StayEntry builds the ledger entry for booking a lodging option.
func (c *Catalog) StayEntry(id string) (core.NewEntry, error) {
	stay, ok := c.Stay(id)
	if !ok {
		return core.NewEntry{}, fmt.Errorf("%w: %q", ErrUnknownStay, id)
	}
	notes := "Favorita"
	if !stay.Preferred {
		region, _ := c.Region(stay.RegionID)
		notes = region.Name
	}
	return core.NewEntry{
		Category:    core.CategoryLodging,
		Description: stay.Name,
		Date:        stay.Period,
		Total:       stay.PriceTotal,
		Notes:       notes,
	}, nil
}
