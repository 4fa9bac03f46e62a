package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdftools/api"
	"pdftools/internal/logging"
)

// HealthHandler godoc
//
// @Summary Liveness probe
// @Tags status
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func HealthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// EnginesHandler godoc
//
// @Summary List installed tools and conversion engines
// @Description Reports which external tools were found and which conversion engines can currently be used. Tool lookups are cached, pass refresh=true to search again after installing something
// @Tags status
// @Produce json
// @Param refresh query bool false "Discard cached tool lookups"
// @Success 200 {object} api.EnginesResponse
// @Failure 400 {object} api.Error
// @Router /api/engines [get]
func (s *Server) EnginesHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	refresh := false
	if raw := ctx.Query("refresh"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			logger.WithError(err).Warn("Invalid refresh parameter")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidRequest.WithDetail("refresh must be a boolean"))
			return
		}
		refresh = parsed
	}

	availability := s.processor.Availability(ctx.Request.Context(), refresh)

	response := api.EnginesResponse{
		Compress:  availability.CanCompress(),
		PdfToDocx: map[string]bool{},
		DocxToPdf: map[string]bool{},
	}
	for _, status := range availability.Tools {
		response.Tools = append(response.Tools, api.ToolStatus{
			Tool:      string(status.Tool),
			Available: status.Available,
			Path:      status.Path,
			Hint:      status.Hint,
		})
	}
	for engine, available := range availability.PdfToDocx {
		response.PdfToDocx[string(engine)] = available
	}
	for engine, available := range availability.DocxToPdf {
		response.DocxToPdf[string(engine)] = available
	}

	logger.Debug("Reporting engine availability", "compress", response.Compress, "refresh", refresh)
	ctx.JSON(http.StatusOK, response)
}
