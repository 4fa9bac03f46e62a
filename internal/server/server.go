package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pdftools/docs"
	"pdftools/internal/logging"
	"pdftools/pkg/config"
	"pdftools/pkg/document"
)

const (
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"

	shutdownTimeout = 30 * time.Second
)

var (
	exposedHeaders = []string{
		"Content-Disposition",
		headerOriginalSize,
		headerCompressedSize,
		headerCompressionQuality,
		headerConversionEngine,
		headerProcessingTime,
		headerRequestID,
	}
)

type Server struct {
	cfg       config.ServerConfig
	processor *document.Processor
	logger    *logging.Logger
}

func NewServer(cfg config.ServerConfig, processor *document.Processor) *Server {
	cfg.PopulateUnsetConfigVars()
	return &Server{cfg: cfg, processor: processor, logger: logging.BuildLogger()}
}

// Router godoc
// @title pdftools API
// @version 1.0
// @description Compress, password protect and convert documents using locally installed tools
// @BasePath /
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), gin.LoggerWithConfig(gin.LoggerConfig{Formatter: logFormatter}), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", headerRequestID},
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", HealthHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	apiGroup.GET("/engines", s.EnginesHandler)

	uploads := apiGroup.Group("", limitUploadSize(s.processor.MaxUploadSize()))
	uploads.POST("/compress", s.CompressHandler)
	uploads.POST("/lock", s.LockHandler)
	uploads.POST("/unlock", s.UnlockHandler)
	uploads.POST("/docx-to-pdf", s.DocxToPdfHandler)
	uploads.POST("/pdf-to-docx", s.PdfToDocxHandler)

	return r
}

// Run serves until ctx is cancelled, then lets in-flight requests finish.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	availability := s.processor.Availability(ctx, false)
	if !availability.CanCompress() {
		s.logger.Warn("Ghostscript was not found, compress, lock and unlock will fail until it is installed")
	}
	s.logger.Info("Starting server", "port", s.cfg.Port, "max_upload_size", humanize.Bytes(uint64(s.processor.MaxUploadSize())))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartServer builds the document processor for cfg and serves the API until ctx is cancelled.
func StartServer(ctx context.Context, cfg config.ServerConfig) error {
	cfg.PopulateUnsetConfigVars()
	processor := document.NewProcessor(cfg.Process, logging.BuildLogger())
	return NewServer(cfg, processor).Run(ctx)
}

type accessLog struct {
	Timestamp      string `json:"timestamp"`
	StatusCode     int    `json:"status_code"`
	Latency        string `json:"latency"`
	LatencyRaw     int64  `json:"latency_raw"`
	RequestSize    string `json:"request_size"`
	RequestSizeRaw int64  `json:"request_size_raw"`
	ResponseSize   string `json:"response_size"`
	ClientIP       string `json:"client_ip"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	RequestID      string `json:"request_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

func logFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	var requestSize int64
	if param.Request != nil && param.Request.ContentLength > 0 {
		requestSize = param.Request.ContentLength
	}
	responseSize := param.BodySize
	if responseSize < 0 {
		responseSize = 0
	}

	line, err := json.Marshal(accessLog{
		Timestamp:      param.TimeStamp.Format(RFC3339Millis),
		StatusCode:     param.StatusCode,
		Latency:        param.Latency.String(),
		LatencyRaw:     param.Latency.Nanoseconds(),
		RequestSize:    humanize.Bytes(uint64(requestSize)),
		RequestSizeRaw: requestSize,
		ResponseSize:   humanize.Bytes(uint64(responseSize)),
		ClientIP:       param.ClientIP,
		Method:         param.Method,
		Path:           param.Path,
		RequestID:      requestIDFromKeys(param.Keys),
		Error:          param.ErrorMessage,
	})
	if err != nil {
		return fmt.Sprintf("{\"error\":%q}\n", err.Error())
	}
	return string(line) + "\n"
}

func requestIDFromKeys(keys map[string]any) string {
	id, _ := keys[logging.RequestIDKey].(string)
	return id
}
