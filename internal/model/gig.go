package model

import "time"

// Gig is a catalogue entry tickets are sold for. Price is in cents.
type Gig struct {
	Slug     string    `json:"slug"`
	BandName string    `json:"bandName"`
	City     string    `json:"city"`
	Venue    string    `json:"venue"`
	Date     time.Time `json:"date"`
	Price    int64     `json:"price"`
}
