package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/services"
)

type (
	// Handlers exposes one Converter over HTTP. Requests are serialized
	// because the converter keeps per instance state.
	Handlers struct {
		mutex     sync.Mutex
		converter *services.Converter
		logger    logrus.FieldLogger
		startTime time.Time
	}

	ErrorResponse struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	ConversionResponse struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
		Result float64 `json:"result"`
	}

	HealthResponse struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
)

func NewHandlers(converter *services.Converter, logger logrus.FieldLogger) *Handlers {
	return &Handlers{
		converter: converter,
		logger:    logger,
		startTime: time.Now(),
	}
}

func RequestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logger.WithFields(logrus.Fields{
			"status":    param.StatusCode,
			"latency":   param.Latency,
			"client_ip": param.ClientIP,
			"method":    param.Method,
			"path":      param.Path,
			"error":     param.ErrorMessage,
		}).Info("HTTP Request")

		return ""
	})
}

func (h *Handlers) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(RequestLogger(h.logger))
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)
	router.GET("/rates", h.Rates)
	router.GET("/convert", h.Convert)
	router.GET("/meta", h.Meta)

	return router
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *Handlers) Rates(c *gin.Context) {
	base := strings.ToUpper(c.Query("base"))

	h.mutex.Lock()
	table, err := h.converter.GetRates(c.Request.Context(), base)
	h.mutex.Unlock()

	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, table)
}

func (h *Handlers) Convert(c *gin.Context) {
	from := strings.ToUpper(c.Query("from"))
	to := strings.ToUpper(c.Query("to"))

	if from == "" || to == "" {
		h.badRequest(c, "from and to are required")
		return
	}

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		h.badRequest(c, "amount must be a finite number")
		return
	}

	var places int64

	if round := c.Query("round"); round != "" {
		if places, err = strconv.ParseInt(round, 10, 32); err != nil {
			h.badRequest(c, "round must be an integer")
			return
		}
	}

	h.mutex.Lock()
	result, err := h.converter.ConvertRound(c.Request.Context(), from, to, amount, int32(places))
	h.mutex.Unlock()

	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConversionResponse{
		From:   from,
		To:     to,
		Amount: amount,
		Result: result,
	})
}

func (h *Handlers) Meta(c *gin.Context) {
	h.mutex.Lock()
	meta := h.converter.Meta()
	h.mutex.Unlock()

	c.JSON(http.StatusOK, meta)
}

func (h *Handlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad request", Message: message})
}

func (h *Handlers) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, currency.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, currency.ErrConfiguration):
		status = http.StatusInternalServerError
	case errors.Is(err, currency.ErrRateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, currency.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, currency.ErrCache):
		status = http.StatusServiceUnavailable
	}

	h.logger.WithError(err).WithField("status", status).Warn("request failed")

	c.JSON(status, ErrorResponse{
		Error:   strings.ToLower(http.StatusText(status)),
		Message: err.Error(),
	})
}
