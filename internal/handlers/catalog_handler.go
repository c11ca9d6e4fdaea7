package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/models"
)

// CatalogHandler serves the static room, amenity and destination catalogs
// plus the live room availability
type CatalogHandler struct {
	inventory *database.InventoryRepository
	logger    *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(inventory *database.InventoryRepository, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		inventory: inventory,
		logger:    logger,
	}
}

// roomTypeView is the room catalog entry exposed over HTTP, with the rate
// table flattened to season-name keys
type roomTypeView struct {
	Name               string            `json:"name"`
	Capacity           int               `json:"capacity"`
	ExtraBedsAllowed   int               `json:"extra_beds_allowed"`
	Description        string            `json:"description"`
	IncludedAmenities  []string          `json:"included_amenities"`
	LocalRates         map[string]string `json:"local_rates"`
	InternationalRates map[string]string `json:"international_rates"`
}

// ListRoomTypes returns the room catalog with rates per season and market
// @Summary List room types
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/rooms [get]
func (h *CatalogHandler) ListRoomTypes(c *gin.Context) {
	catalog := models.Catalog()
	views := make([]roomTypeView, 0, len(catalog))
	for _, rt := range catalog {
		view := roomTypeView{
			Name:               rt.Name,
			Capacity:           rt.Capacity,
			ExtraBedsAllowed:   rt.ExtraBedsAllowed,
			Description:        rt.Description,
			IncludedAmenities:  rt.IncludedAmenities,
			LocalRates:         make(map[string]string, len(rt.LocalRates)),
			InternationalRates: make(map[string]string, len(rt.IntlRates)),
		}
		for s := models.SeasonLean; s <= models.SeasonSuperPeak; s++ {
			view.LocalRates[s.String()] = rt.PriceFor(s, models.MarketLocal).Format()
			view.InternationalRates[s.String()] = rt.PriceFor(s, models.MarketInternational).Format()
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"room_types": views})
}

// ListAmenities returns the bookable add-ons with their unit prices
// @Summary List amenities
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/amenities [get]
func (h *CatalogHandler) ListAmenities(c *gin.Context) {
	amenities := make([]gin.H, 0, models.AmenityKindCount)
	for k := models.AmenityKind(0); int(k) < models.AmenityKindCount; k++ {
		amenities = append(amenities, gin.H{
			"kind":       k.String(),
			"unit_price": k.UnitPrice().Format(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"amenities": amenities})
}

// ListDestinations returns the supported destinations grouped by market
// @Summary List destinations
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/destinations [get]
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"local":         models.LocalDestinations,
		"international": models.InternationalDestinations,
	})
}

// GetAvailability returns the current per-type room availability
// @Summary Room availability
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /catalog/availability [get]
func (h *CatalogHandler) GetAvailability(c *gin.Context) {
	rows, err := h.inventory.ListAvailability()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list room availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": rows})
}
