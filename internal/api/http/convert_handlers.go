package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calcpad/backend/internal/providers/common"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/convert"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
)

var rateContentTypes = map[convert.Format]string{
	convert.FormatYAML: "application/yaml",
	convert.FormatTOML: "application/toml",
}

// ListUnits returns the unit catalogues in display order
func (h *Handlers) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"length":     convert.Length.Units,
		"weight":     convert.Weight.Units,
		"currencies": convert.Currencies,
	})
}

// GetRates returns the rate book as JSON, or as a rate file when
// ?format=yaml or ?format=toml is given.
func (h *Handlers) GetRates(c *gin.Context) {
	rates := h.rates.Snapshot()

	format := strings.ToLower(c.Query("format"))
	if format == "" || format == "json" {
		c.JSON(http.StatusOK, gin.H{
			"base":  convert.USD,
			"rates": rates,
		})
		return
	}

	f := convert.Format(format)
	contentType, ok := rateContentTypes[f]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format " + format})
		return
	}
	data, err := convert.EncodeRates(rates, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// UpdateRates edits one or more rates. Unknown currencies reject the whole
// request; values that are not positive numbers are stored as 1.
func (h *Handlers) UpdateRates(c *gin.Context) {
	var req types.RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edits := make(convert.Rates, len(req.Rates))
	for code := range req.Rates {
		v, _ := common.GetNumber(req.Rates, code)
		edits[code] = v
	}

	rates, err := h.rates.Update(edits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	codes := make([]string, 0, len(edits))
	for code := range edits {
		upper := strings.ToUpper(code)
		codes = append(codes, upper)
		h.metrics.RateUpdated(upper)
	}
	sort.Strings(codes)
	h.logger.Info("Exchange rates updated", zap.Strings("currencies", codes))

	c.JSON(http.StatusOK, gin.H{
		"base":  convert.USD,
		"rates": rates,
	})
}
