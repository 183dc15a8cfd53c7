package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
)

// Phone numbers are stored as bare digits; exactly ten of them.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Genre vocabulary is closed: form submissions may only pick from these tags.
var Genres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

// States lists the accepted US region codes for the state form field.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// ozzo's validation.In takes variadic interface{} values
func genreRuleValues() []interface{} {
	vals := make([]interface{}, len(Genres))
	for i, g := range Genres {
		vals[i] = g
	}
	return vals
}

func stateRuleValues() []interface{} {
	vals := make([]interface{}, len(States))
	for i, s := range States {
		vals[i] = s
	}
	return vals
}

// GenreList is the set of genre tags attached to a venue or artist.
// The column keeps the legacy comma-delimited layout, so the split/join
// happens here and nowhere else.
type GenreList []string

// Value implements driver.Valuer, joining the tags for storage.
func (g GenreList) Value() (driver.Value, error) {
	return strings.Join(g, ","), nil
}

// Scan implements sql.Scanner, splitting the stored string back into tags.
func (g *GenreList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*g = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into GenreList", src)
	}
	if raw == "" {
		*g = nil
		return nil
	}
	*g = strings.Split(raw, ",")
	return nil
}

// Contains reports whether the tag is part of the list.
func (g GenreList) Contains(tag string) bool {
	for _, t := range g {
		if t == tag {
			return true
		}
	}
	return false
}
