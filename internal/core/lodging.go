package core

type (
	// Region groups lodging options for comparison.
	Region struct {
		ID            string `json:"id" toml:"id"`
		Name          string `json:"name" toml:"name"`
		City          string `json:"city" toml:"city"`
		Profile       string `json:"profile" toml:"profile"`
		RioEquivalent string `json:"rioEquivalent" toml:"rio_equivalent"`
		Safety        string `json:"safety" toml:"safety"`
		Description   string `json:"description" toml:"description"`
	}

	Distance struct {
		Place string `json:"place" toml:"place"`
		Dist  string `json:"dist" toml:"dist"`
	}

	// LodgingOption is a read-only catalog record. Rating is on a 0-10 scale.
	LodgingOption struct {
		ID            string     `json:"id" toml:"id"`
		RegionID      string     `json:"regionId" toml:"region_id"`
		Name          string     `json:"name" toml:"name"`
		Preferred     bool       `json:"isPreferred,omitempty" toml:"preferred"`
		Rating        float64    `json:"rating" toml:"rating"`
		PricePerNight float64    `json:"pricePerNight" toml:"price_per_night"`
		PriceTotal    float64    `json:"priceTotal" toml:"price_total"`
		Period        string     `json:"period" toml:"period"`
		Nights        int        `json:"nights" toml:"nights"`
		Link          string     `json:"link" toml:"link"`
		Location      string     `json:"location" toml:"location"`
		Amenities     []string   `json:"amenities" toml:"amenities"`
		Distances     []Distance `json:"distances" toml:"distances"`
		Breakfast     string     `json:"breakfast" toml:"breakfast"`
		Cancellation  string     `json:"cancellation" toml:"cancellation"`
	}
)

// CostEfficiency is price per night divided by rating; lower is better.
// A zero rating yields +Inf.
func (o LodgingOption) CostEfficiency() float64 {
	return o.PricePerNight / o.Rating
}
