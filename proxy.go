package paperqa

import (
	"context"
	"errors"
)

// ProxyMiddleware implements Service over an EndpointSet, letting a thin
// client talk to a remote node through whatever transport produced the
// endpoints.
func ProxyMiddleware(endpoints *EndpointSet) ServiceMiddleware {
	return func(next Service) Service {
		return &proxyMiddleware{
			endpoints: endpoints,
		}
	}
}

type proxyMiddleware struct {
	endpoints *EndpointSet
}

func (mw *proxyMiddleware) Close() error {
	return errors.New("method not implemented")
}

func (mw *proxyMiddleware) UploadDocument(ctx context.Context, filename, text string) (*UploadResult, error) {
	req := UploadDocumentRequest{
		Filename: filename,
		Text:     text,
	}

	resp, err := mw.endpoints.UploadDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	result, ok := resp.(*UploadResult)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return result, nil
}

func (mw *proxyMiddleware) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	resp, err := mw.endpoints.ListDocuments(ctx, nil)
	if err != nil {
		return nil, err
	}

	docs, ok := resp.([]DocumentInfo)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return docs, nil
}

func (mw *proxyMiddleware) AskQuestion(ctx context.Context, documentID string, question string, k ...int) (string, error) {
	n := 0
	if len(k) > 0 {
		n = k[0]
	}

	req := AskQuestionRequest{
		DocumentID: documentID,
		Question:   question,
		K:          n,
	}

	resp, err := mw.endpoints.AskQuestion(ctx, req)
	if err != nil {
		return "", err
	}

	answer, ok := resp.(*AskQuestionResponse)
	if !ok {
		return "", errors.New("invalid response type")
	}

	return answer.Answer, nil
}
