package services

import (
	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/pkg/calendar"
)

// SeasonService classifies calendar days and stays into pricing seasons.
// All methods are pure.
type SeasonService struct{}

// NewSeasonService creates a new SeasonService
func NewSeasonService() *SeasonService {
	return &SeasonService{}
}

// SeasonOfDay classifies a single calendar day. Rules are checked in
// precedence order; the first match wins.
func (s *SeasonService) SeasonOfDay(month, day int) models.Season {
	// SUPER_PEAK: Dec 20 - Dec 31 and Jan 1 - Jan 5
	if (month == 12 && day >= 20) || (month == 1 && day <= 5) {
		return models.SeasonSuperPeak
	}
	// PEAK: Apr 1-10, Dec 10-19
	if (month == 4 && day >= 1 && day <= 10) || (month == 12 && day >= 10 && day <= 19) {
		return models.SeasonPeak
	}
	// HIGH: Jun 1 - Aug 31, Nov 1 - Nov 30
	if (month >= 6 && month <= 8) || month == 11 {
		return models.SeasonHigh
	}
	return models.SeasonLean
}

// SeasonOfStay walks every night of the stay, check-in inclusive to check-out
// exclusive, and returns the most severe season touched. A stay spanning a
// peak boundary is priced at the highest tier it reaches.
//
// Callers must reject checkout <= checkin before calling; on violation the
// stay classifies as LEAN, which is a contract breach, not a usable result.
func (s *SeasonService) SeasonOfStay(checkIn, checkOut calendar.Date) models.Season {
	nights := checkIn.DaysUntil(checkOut)
	if nights <= 0 {
		return models.SeasonLean
	}

	season := models.SeasonLean
	day := checkIn
	for n := int64(0); n < nights; n++ {
		if se := s.SeasonOfDay(day.Month, day.Day); se > season {
			season = se
		}
		day = day.Next()
	}
	return season
}
