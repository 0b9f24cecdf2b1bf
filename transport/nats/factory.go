package nats

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/quoria/paperqa"
)

func MakeEndpoints(nc *nats.Conn, prefix string) *paperqa.EndpointSet {
	return &paperqa.EndpointSet{
		UploadDocument: UploadDocumentEndpoint(nc, prefix+".upload_document"),
		ListDocuments:  ListDocumentsEndpoint(nc, prefix+".list_documents"),
		AskQuestion:    AskQuestionEndpoint(nc, prefix+".ask_question"),
	}
}

func UploadDocumentEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(paperqa.UploadDocumentRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := nc.Request(topic, data, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var result paperqa.UploadResult
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, err
		}

		return &result, nil
	}
}

func ListDocumentsEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		resp, err := nc.Request(topic, nil, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var docs []paperqa.DocumentInfo
		if err := json.Unmarshal(resp.Data, &docs); err != nil {
			return nil, err
		}

		return docs, nil
	}
}

func AskQuestionEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(paperqa.AskQuestionRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := nc.Request(topic, data, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var answer paperqa.AskQuestionResponse
		if err := json.Unmarshal(resp.Data, &answer); err != nil {
			return nil, err
		}

		return &answer, nil
	}
}

func Error(msg *nats.Msg) error {
	if msg == nil {
		return errors.New("nil message")
	}

	code := msg.Header.Get(micro.ErrorCodeHeader)
	if code == "" {
		return nil
	}

	description := msg.Header.Get(micro.ErrorHeader)
	if description == "" {
		description = "unknown error"
	}

	return errors.New(code + ":" + description)
}
