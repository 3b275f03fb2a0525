package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/placescout/placescout/internal/errors"
	"github.com/placescout/placescout/internal/middleware"
	"github.com/placescout/placescout/internal/telemetry"
	"github.com/placescout/placescout/places"
)

// Handler exposes the places client over HTTP.
type Handler struct {
	client *places.Client
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(client *places.Client) *gin.Engine {
	h := &Handler{client: client}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(nil))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.GET("/geocode", h.geocode)
	v1.GET("/search", h.search)
	v1.GET("/places/:reference", h.placeDetails)
	v1.POST("/checkins", h.checkIn)

	return router
}

func (h *Handler) geocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		renderError(c, apperrors.NewInvalidArgumentError("address query parameter is required"))
		return
	}

	location, err := h.client.Geocode(address, queryBool(c, "sensor"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *Handler) search(c *gin.Context) {
	query := places.SearchQuery{
		Location: c.Query("location"),
		Keyword:  c.Query("keyword"),
		Name:     c.Query("name"),
		Sensor:   queryBool(c, "sensor"),
	}

	if latStr, lngStr := c.Query("lat"), c.Query("lng"); latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			renderError(c, apperrors.NewInvalidArgumentError("lat and lng must both be valid numbers"))
			return
		}
		query.LatLng = &places.GeoLocation{Lat: lat, Lng: lng}
	}

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.Atoi(radiusStr)
		if err != nil || radius < 0 {
			renderError(c, apperrors.NewInvalidArgumentError("radius must be a non-negative integer"))
			return
		}
		query.Radius = radius
	}

	if typesStr := c.Query("types"); typesStr != "" {
		query.Types = strings.Split(typesStr, ",")
	}

	result, err := h.client.Search(query)
	if err != nil {
		renderError(c, err)
		return
	}

	payload := searchPayload{
		Places:           make([]placePayload, 0, len(result.Places)),
		HTMLAttributions: result.HTMLAttributions,
		HasAttributions:  result.HasAttributions(),
	}
	for _, place := range result.Places {
		payload.Places = append(payload.Places, summaryPayload(place))
	}
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) placeDetails(c *gin.Context) {
	reference := c.Param("reference")

	place, err := h.client.GetPlace(reference, queryBool(c, "sensor"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, detailPayload(place))
}

func (h *Handler) checkIn(c *gin.Context) {
	var body struct {
		Reference string `json:"reference"`
		Sensor    bool   `json:"sensor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		renderError(c, apperrors.NewInvalidArgumentError("request body must be JSON with a reference field"))
		return
	}
	if body.Reference == "" {
		renderError(c, apperrors.NewInvalidArgumentError("reference is required"))
		return
	}

	if err := h.client.CheckIn(body.Reference, body.Sensor); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return false
	}
	return value
}

func renderError(c *gin.Context, err error) {
	correlationID := telemetry.GetCorrelationID(c.Request.Context())

	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.NewInternalError("An unexpected error occurred", err)
	}
	if appErr.CorrelationID == "" {
		appErr = appErr.WithCorrelationID(correlationID)
	}

	logger := telemetry.LogFromContext(c.Request.Context()).WithFields(map[string]interface{}{
		"error_type": string(appErr.Type),
		"error_code": appErr.Code,
		"path":       c.Request.URL.Path,
	})
	switch appErr.Type {
	case apperrors.ErrorTypeInvalidArgument, apperrors.ErrorTypeAttributeUnavailable:
		logger.Warn(appErr.Message)
	default:
		logger.Error(appErr.Message)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
		"type":           appErr.Type,
		"code":           appErr.Code,
		"message":        appErr.Message,
		"correlation_id": appErr.CorrelationID,
	})
}
