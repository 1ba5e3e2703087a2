package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// maxStatementSize caps uploaded statement files at 10 MiB; real bank
// exports are a few hundred KiB at most.
const maxStatementSize = 10 << 20

// importHandler handles statement file uploads.
type importHandler struct {
	importerService portssvc.ImporterSvcFacade
}

func newImportHandler(is portssvc.ImporterSvcFacade) *importHandler {
	return &importHandler{importerService: is}
}

// registerImportRoutes registers the statement import route.
func registerImportRoutes(rg *gin.RouterGroup, importerService portssvc.ImporterSvcFacade) {
	h := newImportHandler(importerService)
	rg.POST("/imports", h.importStatement)
}

// importStatement accepts a multipart upload with the statement under "file"
// and optional source-account overrides as form fields.
func (h *importHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Import request without file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing statement file"})
		return
	}
	if fileHeader.Size > maxStatementSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Statement file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statement file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statement file"})
		return
	}

	req := dto.ImportRequest{
		Content:         content,
		SourceAccountID: c.PostForm("sourceAccountID"),
		SourceName:      c.PostForm("sourceName"),
		SourceType:      c.PostForm("sourceType"),
	}

	logger.Info("Received statement import", slog.String("filename", fileHeader.Filename), slog.Int64("size", fileHeader.Size))

	resp, err := h.importerService.ImportStatement(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmptyFile), errors.Is(err, apperrors.ErrUnrecognizedFormat):
			logger.Warn("Statement rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			// Operator pinned a source account that does not exist.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Import failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import statement"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}
