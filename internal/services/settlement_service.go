package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/pkg/validator"
)

// ErrInsufficientCash indicates the tendered cash does not cover the total
var ErrInsufficientCash = errors.New("insufficient cash for the total due")

// SettlementResult records how payment completed
type SettlementResult struct {
	Method     models.PaymentMethod
	Change     models.Centavos
	CardMasked string
}

// SettlementService validates payment input and simulates the charge. No
// real authorization happens; a structurally valid card always succeeds.
type SettlementService struct {
	cards  *validator.CardValidator
	logger *logrus.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(cards *validator.CardValidator, logger *logrus.Logger) *SettlementService {
	return &SettlementService{cards: cards, logger: logger}
}

// SettleCash accepts a tendered decimal amount and returns the change due.
// A negative or malformed amount, or one below the total, is rejected; the
// client may retry with a corrected amount.
func (s *SettlementService) SettleCash(amount string, total models.Centavos) (*SettlementResult, error) {
	paid, err := models.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if paid < 0 {
		return nil, models.ErrInvalidAmount
	}
	if paid < total {
		return nil, fmt.Errorf("%w: tendered %s, due %s", ErrInsufficientCash, paid.Format(), total.Format())
	}

	change := paid - total
	s.logger.WithFields(logrus.Fields{
		"total":  total.String(),
		"paid":   paid.String(),
		"change": change.String(),
	}).Info("Cash payment accepted")

	return &SettlementResult{Method: models.PaymentCash, Change: change}, nil
}

// SettleCard validates the card format and simulates a successful charge.
func (s *SettlementService) SettleCard(number, cvv string, total models.Centavos) (*SettlementResult, error) {
	sanitized, err := s.cards.ValidateNumber(number)
	if err != nil {
		return nil, err
	}
	if _, err := s.cards.ValidateCVV(cvv); err != nil {
		return nil, err
	}

	masked := s.cards.MaskNumber(sanitized)
	s.logger.WithFields(logrus.Fields{
		"total": total.String(),
		"card":  masked,
	}).Info("Card charged")

	return &SettlementResult{Method: models.PaymentCard, CardMasked: masked}, nil
}

// Settle dispatches on the payment method.
func (s *SettlementService) Settle(details models.PaymentDetails, total models.Centavos) (*SettlementResult, error) {
	switch details.Method {
	case models.PaymentCash:
		return s.SettleCash(details.CashAmount, total)
	case models.PaymentCard:
		return s.SettleCard(details.CardNumber, details.CVV, total)
	default:
		return nil, fmt.Errorf("unknown payment method: %q", details.Method)
	}
}
