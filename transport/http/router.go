package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quoria/paperqa"
	"github.com/quoria/paperqa/extract"

	mcpE "github.com/quoria/paperqa/mcp"
)

func AddRouters(r *gin.Engine, endpoints paperqa.EndpointSet, extractor extract.Extractor) {
	// RESTful API routes
	api := r.Group("/api")
	{
		api.POST("/documents", UploadDocumentHandler(endpoints.UploadDocument, extractor))
		api.GET("/documents", ListDocumentsHandler(endpoints.ListDocuments))
		api.POST("/documents/:document_id/ask", AskQuestionHandler(endpoints.AskQuestion))
	}
}

func AddStreamableRouters(r *gin.Engine, endpoints map[mcp.MCPMethod]mcpE.MCPEndpoint) {
	mcp := r.Group("/mcp")
	{
		mcp.POST("/", MCPStreamableHandler(endpoints))
	}
}
