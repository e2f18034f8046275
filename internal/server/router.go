package server

import (
	"github.com/gin-gonic/gin"

	"chat-rag/internal/rag"
)

// NewRouter wires the HTTP API around the RAG service.
func NewRouter(ragService *rag.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	h := NewHandler(ragService)
	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	api.POST("/sessions", h.CreateSession)

	ragGroup := api.Group("/rag")
	ragGroup.POST("/upload", h.UploadDocument)
	ragGroup.GET("/documents/:session_id", h.ListDocuments)
	ragGroup.GET("/documents/:session_id/:doc_id", h.GetDocument)
	ragGroup.DELETE("/documents/:session_id/:doc_id", h.DeleteDocument)
	ragGroup.DELETE("/documents/:session_id", h.ClearSession)
	ragGroup.POST("/search", h.SearchChunks)
	ragGroup.POST("/chat", h.Chat)

	return router
}
