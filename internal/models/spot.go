package models

// Spot is one reported activation sighting from the POTA spot feed.
// SpotTime holds epoch seconds (UTC) once the feed has been normalized.
type Spot struct {
	SpotID        int64   `json:"spotId"`
	Activator     string  `json:"activator"`
	Reference     string  `json:"reference"`
	Frequency     string  `json:"frequency"` // kHz, as sent by the feed
	FrequencyKHz  float64 `json:"-"`
	Mode          string  `json:"mode"`
	SpotTime      int64   `json:"spotTime"`
	SpotTimeShort string  `json:"spotTimeShort"` // HH:MM
	Spotter       string  `json:"spotter"`
	Comments      string  `json:"comments"`
	Source        string  `json:"source"`
	Name          string  `json:"name"` // park name
	LocationDesc  string  `json:"locationDesc"`
	Grid4         string  `json:"grid4"`
	Grid6         string  `json:"grid6"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Count         int     `json:"count"`
	Expire        int     `json:"expire"`
}

// Program returns the owning program prefix of the reference ("US" for "US-1234").
func (s Spot) Program() string {
	if len(s.Reference) < 2 {
		return s.Reference
	}
	return s.Reference[:2]
}
