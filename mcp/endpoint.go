// Package mcp exposes the document QA service as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quoria/paperqa"
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      mcp.RequestId   `json:"id"`
	Method  mcp.MCPMethod   `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func errorResponse(id any, code int, message string) mcp.JSONRPCError {
	return mcp.JSONRPCError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(id),
		Error: struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Data    any    `json:"data,omitempty"`
		}{
			Code:    code,
			Message: message,
		},
	}
}

type MCPEndpoint func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage

const MCPSERVER_INSTRUCTIONS string = `PaperQA answers natural-language questions about uploaded documents:

1. **Upload**: Store a document's text and receive an opaque document ID
2. **Retrieval**: Questions are matched against the document's most relevant passages
3. **Answers**: Generatively augmented when a completion model is configured, extractive otherwise

Available tools:
- upload_document: Index a document's text for question answering
- list_documents: List all known documents
- ask_document: Ask a question about a previously uploaded document

Answers to repeated questions are served from a cache.`

func InitializeEndpoint(svc paperqa.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.InitializeParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		protocolVersion := mcp.LATEST_PROTOCOL_VERSION
		if clientVersion := params.ProtocolVersion; clientVersion != "" {
			if slices.Contains(mcp.ValidProtocolVersions, clientVersion) {
				protocolVersion = clientVersion
			}
		}

		result := &mcp.InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: mcp.ServerCapabilities{
				Tools: &struct {
					ListChanged bool `json:"listChanged,omitempty"`
				}{},
			},
			ServerInfo: mcp.Implementation{
				Name:    "paperqa",
				Version: "1.0.0",
			},
			Instructions: MCPSERVER_INSTRUCTIONS,
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func PingEndpoint(svc paperqa.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  struct{}{}, // empty response
		}
	}
}

func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("upload_document",
			mcp.WithDescription("Index a document's text for question answering. Returns the document ID and chunk count."),
			mcp.WithString("filename",
				mcp.Description("Display name for the document"),
			),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The document's extracted plain text"),
			),
		),
		mcp.NewTool("list_documents",
			mcp.WithDescription("List all known documents with their IDs and filenames."),
		),
		mcp.NewTool("ask_document",
			mcp.WithDescription("Ask a natural-language question about a previously uploaded document."),
			mcp.WithString("document_id",
				mcp.Required(),
				mcp.Description("The document ID returned by upload_document"),
			),
			mcp.WithString("question",
				mcp.Required(),
				mcp.Description("The question to answer"),
			),
		),
	}
}

func ListToolsEndpoint(svc paperqa.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		result := &mcp.ListToolsResult{
			Tools: Tools(),
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func CallToolEndpoint(svc paperqa.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		args, _ := params.Arguments.(map[string]any)

		var (
			result *mcp.CallToolResult
			err    error
		)

		switch params.Name {
		case "upload_document":
			result, err = uploadDocument(ctx, svc, args)

		case "list_documents":
			result, err = listDocuments(ctx, svc)

		case "ask_document":
			result, err = askDocument(ctx, svc, args)

		default:
			return errorResponse(req.ID, mcp.INVALID_PARAMS, "unknown tool: "+params.Name)
		}

		if err != nil {
			return errorResponse(req.ID, mcp.INTERNAL_ERROR, err.Error())
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func uploadDocument(ctx context.Context, svc paperqa.Service, args map[string]any) (*mcp.CallToolResult, error) {
	filename, _ := args["filename"].(string)
	text, _ := args["text"].(string)

	result, err := svc.UploadDocument(ctx, filename, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bs, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(bs)), nil
}

func listDocuments(ctx context.Context, svc paperqa.Service) (*mcp.CallToolResult, error) {
	docs, err := svc.ListDocuments(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bs, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(bs)), nil
}

func askDocument(ctx context.Context, svc paperqa.Service, args map[string]any) (*mcp.CallToolResult, error) {
	documentID, _ := args["document_id"].(string)
	question, _ := args["question"].(string)

	answer, err := svc.AskQuestion(ctx, documentID, question)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(answer), nil
}
