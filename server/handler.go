package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/etnz/lots"
	"github.com/etnz/lots/date"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests computing positions.
type Handler struct {
	maxBodyBytes int64
}

// TradesRequest is the body of every computing endpoint.
type TradesRequest struct {
	Trades []lots.Trade `json:"trades" binding:"required"`
}

// NewHandler creates a new handler, request bodies are limited to
// maxBodyBytes (unlimited if zero).
func NewHandler(maxBodyBytes int64) *Handler {
	return &Handler{maxBodyBytes: maxBodyBytes}
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

// Position handles requests to compute the position of a single instrument.
func (h *Handler) Position(c *gin.Context) {
	trades, ok := h.bind(c, lots.Validate)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lots.FIFO(trades))
}

// Batch handles requests to compute one position per symbol.
func (h *Handler) Batch(c *gin.Context) {
	trades, ok := h.bind(c, validateBySymbol)
	if !ok {
		return
	}
	positions, _, err := lots.FIFOBySymbol(c.Request.Context(), trades)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, positions)
}

// Realised handles requests to compute realised gains per period.
func (h *Handler) Realised(c *gin.Context) {
	period, err := date.ParsePeriod(c.DefaultQuery("period", "month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trades, ok := h.bind(c, lots.Validate)
	if !ok {
		return
	}
	rows, err := lots.RealisedByPeriod(lots.FIFO(trades), period)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []lots.PeriodRealised{}
	}
	c.JSON(http.StatusOK, gin.H{"period": period.String(), "rows": rows})
}

// symbolError is a validation error of the trades of one symbol.
type symbolError struct {
	symbol string
	err    error
}

func (e *symbolError) Error() string { return e.err.Error() }
func (e *symbolError) Unwrap() error { return e.err }

// validateBySymbol validates the trades of each symbol independently.
func validateBySymbol(trades []lots.Trade) error {
	groups, symbols := lots.SplitBySymbol(trades)
	for _, s := range symbols {
		if err := lots.Validate(groups[s]); err != nil {
			return &symbolError{symbol: s, err: err}
		}
	}
	return nil
}

// bind reads the trades of the request and, with ?strict, checks them with
// validate. It writes the error response itself and returns false on failure.
func (h *Handler) bind(c *gin.Context, validate func([]lots.Trade) error) ([]lots.Trade, bool) {
	var req TradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return nil, false
	}
	strict, err := strictQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if !strict {
		return req.Trades, true
	}
	if err := validate(req.Trades); err != nil {
		body := gin.H{"error": err.Error()}
		var se *symbolError
		if errors.As(err, &se) {
			body["symbol"] = se.symbol
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return nil, false
	}
	return req.Trades, true
}

func strictQuery(c *gin.Context) (bool, error) {
	s := c.Query("strict")
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

// limitBody caps the size of request bodies.
func (h *Handler) limitBody(c *gin.Context) {
	if h.maxBodyBytes > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}
	c.Next()
}
