package server

import (
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pdftools/api"
	"pdftools/internal/logging"
	"pdftools/pkg/document"
	"pdftools/pkg/model"
)

const (
	headerOriginalSize       = "X-Original-Size"
	headerCompressedSize     = "X-Compressed-Size"
	headerCompressionQuality = "X-Compression-Quality"
	headerConversionEngine   = "X-Conversion-Engine"
	headerProcessingTime     = "X-Processing-Time"
	headerRequestID          = "X-Request-ID"
)

// CompressHandler godoc
//
// @Summary Compress a PDF
// @Description Rewrites the uploaded PDF through Ghostscript with the preset matching the requested quality. low maps to /screen, medium to /ebook, high to /printer and maximum to /prepress
// @Tags pdf
// @Accept multipart/form-data
// @Produce application/pdf,json
// @Param file formData file true "PDF to compress"
// @Param quality formData string false "Compression quality" Enums(low, medium, high, maximum) default(medium)
// @Success 200 {file} file "Compressed PDF"
// @Header 200 {integer} X-Original-Size "Size of the uploaded PDF in bytes"
// @Header 200 {integer} X-Compressed-Size "Size of the compressed PDF in bytes"
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Failure 503 {object} api.Error
// @Failure 504 {object} api.Error
// @Router /api/compress [post]
func (s *Server) CompressHandler(ctx *gin.Context) {
	var request api.CompressRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing compress request")

	if err := ctx.ShouldBind(&request); err != nil {
		handleBindError(ctx, logger, err)
		return
	}

	quality, err := document.ParseQuality(request.Quality)
	if err != nil {
		handleError(ctx, logger, err, "Invalid compression quality")
		return
	}

	s.process(ctx, logger, request.File, func(in model.InputFile) (*document.Result, error) {
		return s.processor.Compress(ctx.Request.Context(), in, quality)
	}, func(result *document.Result) {
		ctx.Header(headerCompressedSize, strconv.FormatInt(result.Stats.OutputSize, 10))
		ctx.Header(headerCompressionQuality, string(quality))
	})
}

// LockHandler godoc
//
// @Summary Password protect a PDF
// @Description Encrypts the uploaded PDF with 128 bit RC4 so it needs the password to be opened. Printing and copying stay allowed
// @Tags pdf
// @Accept multipart/form-data
// @Produce application/pdf,json
// @Param file formData file true "PDF to protect"
// @Param password formData string true "Password needed to open the PDF, at least 4 characters"
// @Param owner_password formData string false "Password granting full permissions, defaults to password"
// @Success 200 {file} file "Encrypted PDF"
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Failure 503 {object} api.Error
// @Failure 504 {object} api.Error
// @Router /api/lock [post]
func (s *Server) LockHandler(ctx *gin.Context) {
	var request api.LockRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing lock request")

	if err := ctx.ShouldBind(&request); err != nil {
		handleBindError(ctx, logger, err)
		return
	}

	s.process(ctx, logger, request.File, func(in model.InputFile) (*document.Result, error) {
		return s.processor.Lock(ctx.Request.Context(), in, document.LockOptions{
			UserPassword:  request.Password,
			OwnerPassword: request.OwnerPassword,
		})
	}, nil)
}

// UnlockHandler godoc
//
// @Summary Remove the password from a PDF
// @Description Decrypts the uploaded PDF using the supplied password. A wrong password is detected from Ghostscript's output on a best-effort basis
// @Tags pdf
// @Accept multipart/form-data
// @Produce application/pdf,json
// @Param file formData file true "Encrypted PDF"
// @Param password formData string true "Password of the PDF"
// @Success 200 {file} file "Decrypted PDF"
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Failure 503 {object} api.Error
// @Failure 504 {object} api.Error
// @Router /api/unlock [post]
func (s *Server) UnlockHandler(ctx *gin.Context) {
	var request api.UnlockRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing unlock request")

	if err := ctx.ShouldBind(&request); err != nil {
		handleBindError(ctx, logger, err)
		return
	}

	s.process(ctx, logger, request.File, func(in model.InputFile) (*document.Result, error) {
		return s.processor.Unlock(ctx.Request.Context(), in, request.Password)
	}, nil)
}

// DocxToPdfHandler godoc
//
// @Summary Convert a Word document to PDF
// @Description Converts the uploaded DOCX with LibreOffice, falling back to Calibre when engine is auto
// @Tags convert
// @Accept multipart/form-data
// @Produce application/pdf,json
// @Param file formData file true "DOCX to convert"
// @Param engine formData string false "Conversion engine" Enums(auto, libreoffice, calibre) default(auto)
// @Success 200 {file} file "Converted PDF"
// @Header 200 {string} X-Conversion-Engine "Engine that produced the output"
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Failure 503 {object} api.Error
// @Failure 504 {object} api.Error
// @Router /api/docx-to-pdf [post]
func (s *Server) DocxToPdfHandler(ctx *gin.Context) {
	var request api.ConvertRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing docx to pdf request")

	if err := ctx.ShouldBind(&request); err != nil {
		handleBindError(ctx, logger, err)
		return
	}

	engine := document.ParseEngine(request.Engine)
	s.process(ctx, logger, request.File, func(in model.InputFile) (*document.Result, error) {
		return s.processor.DocxToPdf(ctx.Request.Context(), in, engine)
	}, setConversionEngine(ctx))
}

// PdfToDocxHandler godoc
//
// @Summary Convert a PDF to a Word document
// @Description Converts the uploaded PDF to DOCX. With engine auto, pdf2docx, pymupdf, java, libreoffice, poppler and calibre are tried in that order, skipping engines that are not installed, until one succeeds
// @Tags convert
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document,json
// @Param file formData file true "PDF to convert"
// @Param engine formData string false "Conversion engine" Enums(auto, pdf2docx, pymupdf, java, libreoffice, poppler, calibre) default(auto)
// @Success 200 {file} file "Converted DOCX"
// @Header 200 {string} X-Conversion-Engine "Engine that produced the output"
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Failure 503 {object} api.Error
// @Failure 504 {object} api.Error
// @Router /api/pdf-to-docx [post]
func (s *Server) PdfToDocxHandler(ctx *gin.Context) {
	var request api.ConvertRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing pdf to docx request")

	if err := ctx.ShouldBind(&request); err != nil {
		handleBindError(ctx, logger, err)
		return
	}

	engine := document.ParseEngine(request.Engine)
	s.process(ctx, logger, request.File, func(in model.InputFile) (*document.Result, error) {
		return s.processor.PdfToDocx(ctx.Request.Context(), in, engine)
	}, setConversionEngine(ctx))
}

func setConversionEngine(ctx *gin.Context) func(*document.Result) {
	return func(result *document.Result) {
		ctx.Header(headerConversionEngine, result.Stats.Engine)
	}
}

// process opens the uploaded file, runs operation on it and writes the result as an attachment.
// setHeaders adds operation specific headers before the body is written.
func (s *Server) process(ctx *gin.Context, logger *logging.Logger, fileHeader *multipart.FileHeader,
	operation func(model.InputFile) (*document.Result, error), setHeaders func(*document.Result)) {

	start := time.Now()

	file, err := fileHeader.Open()
	if err != nil {
		handleError(ctx, logger, err, "Error opening uploaded file")
		return
	}
	defer file.Close()

	result, err := operation(model.InputFile{Name: fileHeader.Filename, Content: file, Size: fileHeader.Size})
	if err != nil {
		handleError(ctx, logger, err, "Error processing document")
		return
	}

	logger.With("stats", toHumanizedProcessStats(result.Stats)).Info("Document processing was successful")

	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.File.Name}))
	ctx.Header(headerOriginalSize, strconv.FormatInt(result.Stats.InputSize, 10))
	ctx.Header(headerProcessingTime, strconv.FormatInt(time.Since(start).Milliseconds(), 10))
	if setHeaders != nil {
		setHeaders(result)
	}
	ctx.Data(http.StatusOK, result.File.ContentType, result.File.Content)
}
