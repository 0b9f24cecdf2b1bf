package paperqa

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quoria/paperqa/cache"
	"github.com/quoria/paperqa/chunk"
	"github.com/quoria/paperqa/embedding"
	"github.com/quoria/paperqa/generate"
	"github.com/quoria/paperqa/persistence"
	"github.com/quoria/paperqa/vector"
)

// Service defines the core logic of PaperQA.
type Service interface {

	// Close gracefully shuts down the service.
	Close() error

	// UploadDocument chunks, embeds, indexes and persists a document's
	// text, returning its generated identifier.
	UploadDocument(ctx context.Context, filename, text string) (*UploadResult, error)

	// ListDocuments returns every known document, resident or persisted.
	ListDocuments(ctx context.Context) ([]DocumentInfo, error)

	// AskQuestion answers a question against a document, retrieving the
	// k nearest chunks as context.
	AskQuestion(ctx context.Context, documentID string, question string, k ...int) (string, error)
}

type ServiceMiddleware func(Service) Service

func NewService(ctx context.Context, cfg Config, embedder *embedding.Adapter, generator generate.Provider, store persistence.Store) (Service, error) {
	cfg.SetDefaults()

	log := zap.L().With(
		zap.String("service", "paperqa"),
	)

	ctx, cancel := context.WithCancel(ctx)

	if generator == nil {
		generator = generate.Disabled{}
	}

	svc := &service{
		documents: make(map[string]*Document),
		answers:   cache.New(cfg.CacheCapacity),

		embedder:  embedder,
		generator: generator,
		store:     store,

		cfg:    cfg,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}

	return svc, nil
}

type service struct {
	// Resident documents and their protection. Values are immutable once
	// registered; the mutex guards only map access.
	documents     map[string]*Document
	documentMutex sync.RWMutex

	// Answer cache (thread-safe by itself)
	answers *cache.Cache

	embedder  *embedding.Adapter
	generator generate.Provider
	store     persistence.Store

	cfg    Config
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func (svc *service) Close() error {
	if svc.cancel != nil {
		svc.cancel()
		svc.cancel = nil
	}

	return nil
}

func (svc *service) UploadDocument(ctx context.Context, filename, text string) (*UploadResult, error) {
	chunks, err := chunk.Split(text, svc.cfg.ChunkSize)
	if err != nil {
		return nil, ErrInvalidDocument
	}

	id := uuid.NewString()

	// Embedding is slow provider I/O; the document is built fully before
	// it becomes visible to any other request.
	index := vector.NewFlat(svc.cfg.Vector.Dimension)
	for _, text := range chunks {
		vec := svc.embedder.Embed(ctx, text)
		if err := index.Add(vec); err != nil {
			return nil, err
		}
	}

	if svc.store != nil {
		snap := persistence.Snapshot{
			Filename:  filename,
			Dimension: index.Dimension(),
			Chunks:    chunks,
			Vectors:   index.Vectors(),
		}

		if err := svc.store.Save(ctx, id, snap); err != nil {
			return nil, err
		}
	}

	doc := &Document{
		ID:       id,
		Filename: filename,
		Chunks:   chunks,
		Index:    index,
	}

	svc.register(doc)

	return &UploadResult{
		DocumentID: id,
		ChunkCount: len(chunks),
	}, nil
}

func (svc *service) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	infos := make(map[string]DocumentInfo)

	if svc.store != nil {
		ids, err := svc.store.List(ctx)
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			infos[id] = DocumentInfo{ID: id}
		}
	}

	svc.documentMutex.RLock()
	for id, doc := range svc.documents {
		infos[id] = DocumentInfo{
			ID:       id,
			Filename: doc.Filename,
		}
	}
	svc.documentMutex.RUnlock()

	list := make([]DocumentInfo, 0, len(infos))
	for _, info := range infos {
		list = append(list, info)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})

	return list, nil
}

func (svc *service) AskQuestion(ctx context.Context, documentID string, question string, k ...int) (string, error) {
	doc, err := svc.resolveDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	if answer, ok := svc.answers.Get(documentID, question); ok {
		return answer, nil
	}

	topK := svc.cfg.TopK
	if len(k) > 0 && k[0] > 0 {
		topK = k[0]
	}

	if topK > len(doc.Chunks) {
		topK = len(doc.Chunks)
	}

	queryVec := svc.embedder.Embed(ctx, question)

	results, err := doc.Index.Search(queryVec, topK)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(results))
	for i, result := range results {
		parts[i] = doc.Chunks[result.Position]
	}

	answer := strings.Join(parts, "\n")

	answer = svc.augment(ctx, doc, question, answer)

	svc.answers.Put(documentID, question, answer)

	return answer, nil
}

// augment sends the retrieved context through the generative provider. Any
// provider failure, including generate.ErrDisabled, keeps the extractive
// answer.
func (svc *service) augment(ctx context.Context, doc *Document, question, contextText string) string {
	ctx, cancel := context.WithTimeout(ctx, svc.cfg.Generate.Timeout)
	defer cancel()

	prompt := generate.BuildPrompt(doc.Filename, contextText, question)

	out, err := svc.generator.Complete(ctx, prompt)
	if err != nil {
		if !errors.Is(err, generate.ErrDisabled) {
			svc.log.Warn("generative provider failed, using extractive answer",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
		}

		return contextText
	}

	if strings.TrimSpace(out) == "" {
		return contextText
	}

	return out
}

// resolveDocument looks up a resident document and falls back to the
// persistence layer, rebuilding the index from its snapshot. Two concurrent
// loads of the same document produce identical registrations.
func (svc *service) resolveDocument(ctx context.Context, id string) (*Document, error) {
	svc.documentMutex.RLock()
	doc, ok := svc.documents[id]
	svc.documentMutex.RUnlock()

	if ok {
		return doc, nil
	}

	if svc.store == nil {
		return nil, ErrDocumentNotFound
	}

	snap, err := svc.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, err
	}

	index := vector.NewFlat(snap.Dimension)
	for _, vec := range snap.Vectors {
		if err := index.Add(vec); err != nil {
			return nil, err
		}
	}

	doc = &Document{
		ID:       id,
		Filename: snap.Filename,
		Chunks:   snap.Chunks,
		Index:    index,
	}

	svc.register(doc)

	svc.log.Info("document reloaded from persistence",
		zap.String("document_id", id),
		zap.Int("chunks", len(doc.Chunks)),
	)

	return doc, nil
}

func (svc *service) register(doc *Document) {
	svc.documentMutex.Lock()
	svc.documents[doc.ID] = doc
	svc.documentMutex.Unlock()
}
