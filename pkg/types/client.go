package types

import "strings"

// HairColor is the enumerated hair colour of a client.
type HairColor string

// Hair colours accepted by the clients table.
const (
	HairBrown HairColor = "brown"
	HairBlond HairColor = "blond"
	HairRed   HairColor = "red"
	HairBald  HairColor = "bald"
)

// HairColors lists every valid hair colour in display order.
var HairColors = []HairColor{HairBrown, HairBlond, HairRed, HairBald}

// validHairColors is the set of recognized hair colour values.
var validHairColors = map[HairColor]bool{
	HairBrown: true,
	HairBlond: true,
	HairRed:   true,
	HairBald:  true,
}

// Valid reports whether h is one of the enumerated hair colours.
// The comparison is exact; use ParseHairColor for user input.
func (h HairColor) Valid() bool {
	return validHairColors[h]
}

// ParseHairColor normalises s (trimmed, lower-cased) and returns the matching
// hair colour. Returns ErrInvalidHairColor for anything else.
func ParseHairColor(s string) (HairColor, error) {
	h := HairColor(strings.ToLower(strings.TrimSpace(s)))
	if !h.Valid() {
		return "", ErrInvalidHairColor
	}
	return h, nil
}

// BirthDateLayout is the ISO 8601 calendar date layout of Client.BirthDate.
const BirthDateLayout = "2006-01-02"

// Client represents one row of the clients table.
// ID is zero for a client that has not been inserted yet.
type Client struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	PostalCode      string    `json:"postal_code"`
	City            string    `json:"city"`
	BirthDate       string    `json:"birth_date"` // YYYY-MM-DD
	AvailableCredit float64   `json:"available_credit"`
	IsGoodClient    bool      `json:"is_good_client"`
	HairColor       HairColor `json:"hair_color"`
}
