package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"

	errStartFeed       = "failed to start sensor feed"
	errStopFeed        = "failed to stop sensor feed"
	errGetState        = "failed to load state"
	errModelNotLoaded  = "model not loaded"
	errPredictFailed   = "prediction failed"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// Request DTO for a prediction. All five sensor fields are required; the
// booleans use pointers so a missing field is distinguishable from false.
type predictRequest struct {
	ToxicGas        *bool    `json:"toxic_gas" binding:"required"`
	IsRaining       *bool    `json:"is_raining" binding:"required"`
	TemperatureC    *float64 `json:"temperature_c" binding:"required"`
	WaterDistanceMM *float64 `json:"water_distance_mm" binding:"required"`
	WaterFlowing    *bool    `json:"water_flowing" binding:"required"`
}

func (r predictRequest) reading() drainguard.SensorReading {
	return drainguard.SensorReading{
		ToxicGas:        *r.ToxicGas,
		IsRaining:       *r.IsRaining,
		TemperatureC:    *r.TemperatureC,
		WaterDistanceMM: *r.WaterDistanceMM,
		WaterFlowing:    *r.WaterFlowing,
	}
}

// PredictRequest is an exported model for Swagger docs of the predict payload.
type PredictRequest struct {
	// Toxic gas detected in the drain
	ToxicGas bool `json:"toxic_gas" example:"false"`
	// Currently raining
	IsRaining bool `json:"is_raining" example:"false"`
	// Ambient temperature in Celsius, range [-10, 50]
	TemperatureC float64 `json:"temperature_c" example:"25"`
	// Distance from sensor to water surface in mm, range [0, 1000]
	WaterDistanceMM float64 `json:"water_distance_mm" example:"792"`
	// Water flowing through the drain
	WaterFlowing bool `json:"water_flowing" example:"true"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Classify a sensor reading
// @Description  Runs one reading through the scaler + classifier and returns BLOCKED or NORMAL with a confidence value.
// @Tags         drain
// @Accept       json
// @Produce      json
// @Param        body  body   PredictRequest  true  "Sensor reading"
// @Success      200   {object}  map[string]interface{}  "prediction, reading"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      503   {object}  map[string]string  "model not loaded"
// @Router       /api/v1/drain/predict [post]
// @Security     BearerAuth
func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	reading := req.reading()
	res, err := h.services.Inference.Classify(c.Request.Context(), reading)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelUnavailable):
			h.logAndJSONError(c, http.StatusServiceUnavailable, errModelNotLoaded, "predict_model_unavailable", err)
		case errors.Is(err, service.ErrInvalidReading):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errPredictFailed, "predict_failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": res,
		"reading":    reading,
	})
}

// @Summary      Get drain state
// @Description  Latest persisted reading with its classification.
// @Tags         drain
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/drain/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "drain_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get model info
// @Description  Reports whether the artifacts loaded, the classifier kind, feature order, and probability support.
// @Tags         drain
// @Produce      json
// @Success      200  {object}  service.ModelInfo
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/drain/model [get]
// @Security     BearerAuth
func (h *Handler) getModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Inference.ModelInfo())
}

// @Summary      Start sensor feed
// @Tags         drain
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/drain/start [post]
// @Security     BearerAuth
func (h *Handler) startFeed(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Feed.Start(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStartFeed, "feed_start_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStarted, gin.H{})
}

// @Summary      Stop sensor feed
// @Tags         drain
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/drain/stop [post]
// @Security     BearerAuth
func (h *Handler) stopFeed(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Feed.Stop(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStopFeed, "feed_stop_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped, gin.H{})
}
