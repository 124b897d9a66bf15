package countries

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayoussef/atlas/app/api"
)

// Handler handles HTTP requests for countries
type Handler struct {
	service Service
}

// NewHandler creates a new country handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetAllCountries lists the full catalogue, network-first with local
// fallback.
func (h *Handler) GetAllCountries(c *gin.Context) {
	countries, err := h.service.GetAllCountries(c.Request.Context())
	if err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.ListResponse(c, "Countries retrieved successfully", countries, len(countries))
}

// SearchCountries filters the catalogue by the q query parameter.
func (h *Handler) SearchCountries(c *gin.Context) {
	countries, err := h.service.SearchCountries(c.Request.Context(), c.Query("q"))
	if err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.ListResponse(c, "Countries retrieved successfully", countries, len(countries))
}

// GetCountryByCode returns the details of one country by alpha-2 code.
func (h *Handler) GetCountryByCode(c *gin.Context) {
	country, err := h.service.GetCountryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Country retrieved successfully", country)
}

// GetSelectedCountries lists the user's pinned countries.
func (h *Handler) GetSelectedCountries(c *gin.Context) {
	countries, err := h.service.GetSelectedCountries(c.Request.Context())
	if err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.ListResponse(c, "Selected countries retrieved successfully", countries, len(countries))
}

// AddSelectedCountry pins a country.
func (h *Handler) AddSelectedCountry(c *gin.Context) {
	var req AddSelectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, "alpha3_code must be a 3-letter country code")
		return
	}

	if err := h.service.AddSelectedCountry(c.Request.Context(), req.Alpha3Code); err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusCreated, "Country added to selection", nil)
}

// RemoveSelectedCountry unpins a country by alpha-3 code.
func (h *Handler) RemoveSelectedCountry(c *gin.Context) {
	if err := h.service.RemoveSelectedCountry(c.Request.Context(), c.Param("code")); err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Country removed from selection", nil)
}

// GetCacheStatus reports the snapshot freshness.
func (h *Handler) GetCacheStatus(c *gin.Context) {
	status, err := h.service.CacheStatus(c.Request.Context())
	if err != nil {
		api.ErrorResponseFromErr(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Cache status retrieved successfully", status)
}
