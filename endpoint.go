package paperqa

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	UploadDocument endpoint.Endpoint
	ListDocuments  endpoint.Endpoint
	AskQuestion    endpoint.Endpoint
}

type UploadDocumentRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

func UploadDocumentEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(UploadDocumentRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.UploadDocument(ctx, req.Filename, req.Text)
	}
}

func ListDocumentsEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.ListDocuments(ctx)
	}
}

type AskQuestionRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	K          int    `json:"k,omitempty"`
}

type AskQuestionResponse struct {
	Answer string `json:"answer"`
}

func AskQuestionEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(AskQuestionRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		answer, err := svc.AskQuestion(ctx, req.DocumentID, req.Question, req.K)
		if err != nil {
			return nil, err
		}

		return &AskQuestionResponse{Answer: answer}, nil
	}
}
