package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/quoria/paperqa"
)

type stubService struct {
	answer string
}

func (s *stubService) Close() error { return nil }

func (s *stubService) UploadDocument(ctx context.Context, filename, text string) (*paperqa.UploadResult, error) {
	return &paperqa.UploadResult{DocumentID: "id-1", ChunkCount: 2}, nil
}

func (s *stubService) ListDocuments(ctx context.Context) ([]paperqa.DocumentInfo, error) {
	return []paperqa.DocumentInfo{{ID: "id-1", Filename: "doc.txt"}}, nil
}

func (s *stubService) AskQuestion(ctx context.Context, documentID string, question string, k ...int) (string, error) {
	return s.answer, nil
}

func TestUnmarshalInitializeRequest(t *testing.T) {
	assert := assert.New(t)

	input := []byte(`{
	  "jsonrpc": "2.0",
	  "id": 1,
	  "method": "initialize",
	  "params": {
	    "protocolVersion": "2024-11-05",
	    "clientInfo": {
	      "name": "ExampleClient",
	      "version": "1.0.0"
	    }
	  }
	}`)

	var req JSONRPCRequest
	if err := json.Unmarshal(input, &req); err != nil {
		assert.Fail(err.Error())
		return
	}

	var params mcp.InitializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(mcp.JSONRPC_VERSION, req.JSONRPC)
	assert.Equal(mcp.NewRequestId(int64(1)), req.ID)
	assert.Equal(mcp.MethodInitialize, req.Method)
	assert.Equal("2024-11-05", params.ProtocolVersion)
}

func TestListToolsEndpoint(t *testing.T) {
	assert := assert.New(t)

	endpoint := ListToolsEndpoint(&stubService{})

	req := JSONRPCRequest{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(int64(1)),
		Method:  mcp.MethodToolsList,
	}

	resp := endpoint(context.Background(), req)

	result, ok := resp.(mcp.JSONRPCResponse)
	if !ok {
		assert.Fail("invalid response type")
		return
	}

	tools, ok := result.Result.(*mcp.ListToolsResult)
	if !ok {
		assert.Fail("invalid result type")
		return
	}

	assert.Len(tools.Tools, 3)
	assert.Equal("upload_document", tools.Tools[0].Name)
	assert.Equal("list_documents", tools.Tools[1].Name)
	assert.Equal("ask_document", tools.Tools[2].Name)
}

func TestCallToolEndpoint(t *testing.T) {
	assert := assert.New(t)

	endpoint := CallToolEndpoint(&stubService{answer: "42"})

	params, _ := json.Marshal(map[string]any{
		"name": "ask_document",
		"arguments": map[string]any{
			"document_id": "id-1",
			"question":    "what is the answer?",
		},
	})

	req := JSONRPCRequest{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(int64(2)),
		Method:  mcp.MethodToolsCall,
		Params:  params,
	}

	resp := endpoint(context.Background(), req)

	result, ok := resp.(mcp.JSONRPCResponse)
	if !ok {
		assert.Fail("invalid response type")
		return
	}

	callResult, ok := result.Result.(*mcp.CallToolResult)
	if !ok {
		assert.Fail("invalid result type")
		return
	}

	assert.False(callResult.IsError)
	assert.Len(callResult.Content, 1)

	content, ok := callResult.Content[0].(mcp.TextContent)
	if !ok {
		assert.Fail("invalid content type")
		return
	}

	assert.Equal("42", content.Text)
}

func TestCallToolEndpointUnknownTool(t *testing.T) {
	assert := assert.New(t)

	endpoint := CallToolEndpoint(&stubService{})

	params, _ := json.Marshal(map[string]any{
		"name": "delete_document",
	})

	req := JSONRPCRequest{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(int64(3)),
		Method:  mcp.MethodToolsCall,
		Params:  params,
	}

	resp := endpoint(context.Background(), req)

	_, ok := resp.(mcp.JSONRPCError)
	assert.True(ok, "unknown tool must produce a JSON-RPC error")
}
