package models

import "errors"

// Market represents the pricing market of a destination
type Market string

const (
	MarketLocal         Market = "Local"
	MarketInternational Market = "International"
)

// ErrUnknownDestination indicates the destination is not offered
var ErrUnknownDestination = errors.New("unknown destination")

// LocalDestinations lists the hotel's domestic destinations
var LocalDestinations = []string{"Baguio", "Boracay", "El Nido", "Siargao"}

// InternationalDestinations lists the hotel's overseas destinations
var InternationalDestinations = []string{"Hong Kong", "Japan", "Singapore", "South Korea"}

// MarketForDestination resolves a destination name to its market. The market
// flag derives entirely from which list the destination came from.
func MarketForDestination(destination string) (Market, error) {
	for _, d := range LocalDestinations {
		if d == destination {
			return MarketLocal, nil
		}
	}
	for _, d := range InternationalDestinations {
		if d == destination {
			return MarketInternational, nil
		}
	}
	return "", ErrUnknownDestination
}
