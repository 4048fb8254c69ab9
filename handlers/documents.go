package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"praxis/services/documents"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler exposes patient document upload and retrieval.
type DocumentHandler struct {
	Service documents.DocumentService
}

func NewDocumentHandler(svc documents.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: svc}
}

// UploadHandler accepts a multipart upload for one patient.
func (h *DocumentHandler) UploadHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")
	patientID := c.Param("patientID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	doc, err := h.Service.Upload(c.Request.Context(), providerID, patientID, fileHeader.Filename, tempFilePath)
	if err != nil {
		logger.Error("Document upload failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) ListByPatientHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	docs, err := h.Service.ListByPatient(c.Request.Context(), providerID, c.Param("patientID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// DownloadURLHandler returns a short-lived signed URL for one document.
func (h *DocumentHandler) DownloadURLHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	url, err := h.Service.GetDownloadURL(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.Delete(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
