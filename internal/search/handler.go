package search

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"routewise/pkg/amadeus"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{
		service: s,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/flights/explore", h.ExploreHandler)
	router.GET("/v1/flights/destinations/:origin", h.DestinationsHandler)
	router.POST("/v1/flights/multicity", h.MultiCityHandler)
}

// ExploreHandler godoc
// @Summary      Search flight offers across candidate dates and destinations
// @Description  Expands the request's date shape into candidate date pairs, fans out over destinations, and returns up to resultLimit normalized offers
// @Tags         flights
// @Produce      json
// @Param        origin query string true "Origin IATA code"
// @Param        destination query string false "Destination IATA code"
// @Param        year query int false "Search year"
// @Param        month query int false "Search month (1-12)"
// @Param        departureDayOfWeek query int false "Departure weekday (0=Sunday)"
// @Param        returnDayOfWeek query int false "Return weekday (0=Sunday)"
// @Param        departureDate query string false "Explicit departure date (YYYY-MM-DD)"
// @Param        returnDate query string false "Explicit return date (YYYY-MM-DD)"
// @Param        durationDays query int false "Trip duration in days"
// @Param        minLayoverDuration query int false "Minimum layover minutes"
// @Param        layovers query int false "Exact layover count"
// @Param        maxPrice query int false "Maximum price"
// @Param        adults query int false "Adults count"
// @Param        max query int false "Per-call result cap"
// @Param        resultLimit query int false "Overall result limit"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /v1/flights/explore [get]
func (h *Handler) ExploreHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request format: %v", err),
			"code":  ErrorCodeValidation,
		})
		return
	}

	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	if len(req.Origin) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "origin must be a 3-letter IATA code",
			"code":  ErrorCodeValidation,
		})
		return
	}
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))

	response, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) DestinationsHandler(c *gin.Context) {
	origin := strings.ToUpper(strings.TrimSpace(c.Param("origin")))
	if len(origin) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "origin must be a 3-letter IATA code",
			"code":  ErrorCodeValidation,
		})
		return
	}

	destinations, err := h.service.Destinations(c.Request.Context(), origin)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"origin":       origin,
		"destinations": destinations,
	})
}

func (h *Handler) MultiCityHandler(c *gin.Context) {
	var req amadeus.MultiCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	if len(req.OriginDestinations) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "at least one origin-destination leg is required",
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.MultiCity(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
