package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	mcpE "github.com/quoria/paperqa/mcp"
)

// MCPStreamableHandler serves MCP JSON-RPC requests over plain HTTP POST,
// dispatching each method to its registered endpoint.
func MCPStreamableHandler(endpoints map[mcp.MCPMethod]mcpE.MCPEndpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mcpE.JSONRPCRequest
		if err := c.ShouldBind(&req); err != nil {
			c.Error(err)
			c.Abort()

			writeMCPError(c, req.ID, mcp.PARSE_ERROR, "parse error")
			return
		}

		endpoint, ok := endpoints[req.Method]
		if !ok {
			writeMCPError(c, req.ID, mcp.METHOD_NOT_FOUND, "method not found")
			return
		}

		resp := endpoint(c.Request.Context(), req)
		c.JSON(http.StatusOK, &resp)
	}
}

func writeMCPError(c *gin.Context, id mcp.RequestId, code int, message string) {
	resp := mcp.JSONRPCError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
		Error: struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Data    any    `json:"data,omitempty"`
		}{
			Code:    code,
			Message: message,
		},
	}

	status := http.StatusBadRequest
	if code == mcp.METHOD_NOT_FOUND {
		status = http.StatusNotFound
	}

	c.JSON(status, &resp)
}
