// Package launch holds the launch-record dataset behind the dashboard.
//
// A Dataset is built once at startup from one or more sources (CSV,
// Parquet, SQLite or a ClickHouse table) and is read-only afterwards, so it
// can be shared by every request handler without locking.
package launch

// Column names of the tabular launch dataset.
const (
	ColFlightNumber    = "Flight Number"
	ColLaunchSite      = "Launch Site"
	ColClass           = "class"
	ColPayloadMass     = "Payload Mass (kg)"
	ColBoosterVersion  = "Booster Version"
	ColBoosterCategory = "Booster Version Category"
)

// Outcome labels shown on charts.
const (
	OutcomeSuccess = "Success"
	OutcomeFailure = "Failure"
)

// Record is one launch.
type Record struct {
	FlightNumber    int     `json:"flight_number,omitempty"`
	Site            string  `json:"site"`
	Success         bool    `json:"success"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	BoosterVersion  string  `json:"booster_version,omitempty"`
	BoosterCategory string  `json:"booster_category"`
}

// Outcome returns "Success" or "Failure".
func (r Record) Outcome() string {
	if r.Success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// Dataset is an immutable collection of launch records.
type Dataset struct {
	records []Record
	sites   []string
	bySite  map[string][]int
}

// NewDataset copies records into a new Dataset and indexes them by site.
// Sites keep the order in which they first appear.
func NewDataset(records []Record) *Dataset {
	d := &Dataset{
		records: make([]Record, len(records)),
		bySite:  make(map[string][]int),
	}
	copy(d.records, records)
	for i, r := range d.records {
		if _, seen := d.bySite[r.Site]; !seen {
			d.sites = append(d.sites, r.Site)
		}
		d.bySite[r.Site] = append(d.bySite[r.Site], i)
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Sites returns the distinct site codes in first-appearance order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether any record was launched from code.
func (d *Dataset) HasSite(code string) bool {
	_, ok := d.bySite[code]
	return ok
}

// BySite returns the records launched from code, in load order.
// Unknown codes yield an empty slice.
func (d *Dataset) BySite(code string) []Record {
	idx := d.bySite[code]
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.records[i])
	}
	return out
}
