package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-rag/internal/extractor"
	"chat-rag/internal/helper"
	"chat-rag/internal/rag"
)

const maxUploadSize = 10 << 20 // 10 MB

type Handler struct {
	ragService *rag.Service
}

func NewHandler(ragService *rag.Service) *Handler {
	return &Handler{ragService: ragService}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateSession issues an opaque session key. Documents and retrieval
// are partitioned by this key.
func (h *Handler) CreateSession(c *gin.Context) {
	sessionID, err := helper.GenerateUUID()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not create session")
		return
	}
	respondOK(c, gin.H{"session_id": sessionID})
}

func (h *Handler) UploadDocument(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, "session_id is required")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "file too large")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read file")
		return
	}

	result, err := h.ragService.Upload(c.Request.Context(), sessionID, fileHeader.Filename, data)
	if err != nil {
		var extErr *extractor.ExtractionError
		switch {
		case errors.As(err, &extErr):
			respondError(c, http.StatusBadRequest, extErr.Error())
		case errors.Is(err, rag.ErrNoText), errors.Is(err, rag.ErrNoChunks):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "document processing failed")
		}
		return
	}
	respondOK(c, result)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	sessionID := c.Param("session_id")
	respondOK(c, gin.H{"documents": h.ragService.Store().ListDocuments(sessionID)})
}

func (h *Handler) GetDocument(c *gin.Context) {
	sessionID := c.Param("session_id")
	docID := c.Param("doc_id")
	doc, ok := h.ragService.Store().GetDocument(sessionID, docID)
	if !ok {
		respondError(c, http.StatusNotFound, "document not found")
		return
	}
	// Full text but no embeddings; vectors stay server-side.
	respondOK(c, gin.H{
		"id":          doc.ID,
		"filename":    doc.Filename,
		"text":        doc.Text,
		"chunk_count": len(doc.Chunks),
		"upload_time": doc.UploadTime,
	})
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	sessionID := c.Param("session_id")
	docID := c.Param("doc_id")
	if !h.ragService.Store().DeleteDocument(sessionID, docID) {
		respondError(c, http.StatusNotFound, "document not found")
		return
	}
	respondOK(c, gin.H{"deleted": docID})
}

func (h *Handler) ClearSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	h.ragService.Store().ClearSession(sessionID)
	respondOK(c, gin.H{"cleared": sessionID})
}

type SearchRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Query     string `json:"query" binding:"required"`
	TopK      int    `json:"top_k"`
	// pointer so an explicit 0 is distinguishable from an absent field
	SimilarityThreshold *float64 `json:"similarity_threshold"`
}

func (h *Handler) SearchChunks(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	threshold := -1.0 // configured default
	if req.SimilarityThreshold != nil {
		threshold = *req.SimilarityThreshold
	}
	results, err := h.ragService.Search(c.Request.Context(), req.SessionID, req.Query, req.TopK, threshold)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "search failed")
		return
	}
	respondOK(c, gin.H{"results": results})
}

type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
	TopK      int    `json:"top_k"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	result, err := h.ragService.Answer(c.Request.Context(), req.SessionID, req.Message, req.TopK)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "chat completion failed")
		return
	}
	respondOK(c, result)
}
