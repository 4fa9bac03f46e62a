package server

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdftools/internal/logging"
)

const (
	// Room for multipart boundaries and the small text fields sent next to the file
	multipartOverhead = 1 << 20
)

// requestID reuses a caller supplied X-Request-ID or generates one, and exposes it to loggers.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(headerRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		ctx.Set(logging.RequestIDKey, id)
		ctx.Request = ctx.Request.WithContext(logging.ContextWithRequestID(ctx.Request.Context(), id))
		ctx.Header(headerRequestID, id)
		ctx.Next()
	}
}

// limitUploadSize rejects bodies that cannot fit in maxUploadSize before anything is read, and caps
// the body of chunked requests so reading stops at the limit.
func limitUploadSize(maxUploadSize int64) gin.HandlerFunc {
	limit := maxUploadSize + multipartOverhead
	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength > limit {
			logger := logging.BuildLoggerFromCtx(ctx)
			logger.Warn("Rejecting oversized upload", "content_length", humanize.Bytes(uint64(ctx.Request.ContentLength)))
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				errFileTooLarge.WithDetail("File exceeds the maximum upload size of "+humanize.Bytes(uint64(maxUploadSize))))
			return
		}
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		ctx.Next()
	}
}
