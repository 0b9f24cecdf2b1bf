package paperqa

import (
	"context"

	"go.uber.org/zap"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	log = log.With(
		zap.String("service", "paperqa"),
	)

	return func(next Service) Service {
		log.Info("service initialized")

		return &loggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) Close() error {
	log := mw.log.With(
		zap.String("action", "close"),
	)

	err := mw.next.Close()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("service closed")
	return nil
}

func (mw *loggingMiddleware) UploadDocument(ctx context.Context, filename, text string) (*UploadResult, error) {
	log := mw.log.With(
		zap.String("action", "upload_document"),
		zap.String("filename", filename),
	)

	result, err := mw.next.UploadDocument(ctx, filename, text)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("document uploaded",
		zap.String("document_id", result.DocumentID),
		zap.Int("chunks", result.ChunkCount),
	)

	return result, nil
}

func (mw *loggingMiddleware) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	log := mw.log.With(
		zap.String("action", "list_documents"),
	)

	docs, err := mw.next.ListDocuments(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("documents listed", zap.Int("count", len(docs)))
	return docs, nil
}

func (mw *loggingMiddleware) AskQuestion(ctx context.Context, documentID string, question string, k ...int) (string, error) {
	var n int
	if len(k) > 0 {
		n = k[0]
	}

	log := mw.log.With(
		zap.String("action", "ask_question"),
		zap.String("document_id", documentID),
	)

	if n > 0 {
		log = log.With(
			zap.Int("k", n),
		)
	}

	answer, err := mw.next.AskQuestion(ctx, documentID, question, k...)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("question answered")
	return answer, nil
}
