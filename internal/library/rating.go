package library

import "strings"

// Rating is a parental rating from a fixed set of codes
type Rating int

const (
	RatingNone Rating = iota
	RatingEarlyChildhood
	RatingEveryone
	RatingEveryone10
	RatingTeen
	RatingMature
	RatingAdultsOnly
	RatingPending
	RatingPendingMature
)

type ratingInfo struct {
	code  string // Written to game.cfg
	label string // Shown to the user
}

var ratings = map[Rating]ratingInfo{
	RatingNone:           {"", ""},
	RatingEarlyChildhood: {"EC", "EC"},
	RatingEveryone:       {"E", "E"},
	RatingEveryone10:     {"E10+", "E 10+"},
	RatingTeen:           {"T", "T"},
	RatingMature:         {"M", "M 17+"},
	RatingAdultsOnly:     {"AO", "AO 18+"},
	RatingPending:        {"RP", "RP"},
	RatingPendingMature:  {"RP-LM17", "RP LM 17+"},
}

// AllRatings lists every rating in display order, RatingNone first
func AllRatings() []Rating {
	return []Rating{
		RatingNone,
		RatingEarlyChildhood,
		RatingEveryone,
		RatingEveryone10,
		RatingTeen,
		RatingMature,
		RatingAdultsOnly,
		RatingPending,
		RatingPendingMature,
	}
}

// Code returns the value stored in game.cfg
func (r Rating) Code() string {
	return ratings[r].code
}

// String returns the label shown to the user
func (r Rating) String() string {
	return ratings[r].label
}

// ParseRating decodes a rating code or label, ignoring case.
// Unknown values return false.
func ParseRating(s string) (Rating, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RatingNone, true
	}
	for _, r := range AllRatings() {
		info := ratings[r]
		if r == RatingNone {
			continue
		}
		if strings.EqualFold(s, info.code) || strings.EqualFold(s, info.label) {
			return r, true
		}
	}
	return RatingNone, false
}
