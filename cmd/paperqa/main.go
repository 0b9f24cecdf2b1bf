package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/quoria/paperqa"
	"github.com/quoria/paperqa/embedding"
	"github.com/quoria/paperqa/extract"
	"github.com/quoria/paperqa/generate"
	"github.com/quoria/paperqa/persistence"

	chromemP "github.com/quoria/paperqa/persistence/chromem"
	fileP "github.com/quoria/paperqa/persistence/file"

	mcpE "github.com/quoria/paperqa/mcp"
	httpT "github.com/quoria/paperqa/transport/http"
	natsT "github.com/quoria/paperqa/transport/nats"
)

func main() {
	cmd := &cli.Command{
		Name:  "paperqa",
		Usage: "PaperQA document question-answering service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the PaperQA data directory",
			},
			&cli.StringFlag{
				Name:    "nats",
				Usage:   "NATS server URL (empty disables the NATS transport)",
				Sources: cli.EnvVars("NATS_URL"),
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "HTTP server address",
				Value: ":8080",
			},
			&cli.StringFlag{
				Name:  "cors-origin",
				Usage: "Allowed CORS origin for browser clients",
				Value: "http://localhost:3000",
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = filepath.Join(homeDir, ".paperqa")
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	var cfg paperqa.Config

	f, err := os.Open(filepath.Join(path, "config.yaml"))
	if err == nil {
		err = yaml.NewDecoder(f).Decode(&cfg)
		f.Close()

		if err != nil {
			return err
		}
	}

	cfg.SetDefaults()

	if cfg.Persistence.Path == "" {
		cfg.Persistence.Path = filepath.Join(path, "documents")
	}

	embedder, err := makeEmbedder(cfg)
	if err != nil {
		return err
	}

	generator, err := makeGenerator(cfg)
	if err != nil {
		return err
	}

	store, err := makeStore(cfg)
	if err != nil {
		return err
	}

	svc, err := paperqa.NewService(ctx, cfg, embedder, generator, store)
	if err != nil {
		return err
	}
	defer svc.Close()

	svc = paperqa.LoggingMiddleware(log)(svc)

	endpoints := paperqa.EndpointSet{
		UploadDocument: paperqa.UploadDocumentEndpoint(svc),
		ListDocuments:  paperqa.ListDocumentsEndpoint(svc),
		AskQuestion:    paperqa.AskQuestionEndpoint(svc),
	}

	natsURL := cmd.String("nats")
	if natsURL != "" {
		nc, err := nats.Connect(natsURL,
			nats.Name("PaperQA Server"),
		)

		if err != nil {
			return err
		}
		defer nc.Drain()

		srv, err := micro.AddService(nc, micro.Config{
			Name:    "paperqa",
			Version: "1.0.0",
		})

		if err != nil {
			return err
		}
		defer srv.Stop()

		root := srv.AddGroup("paperqa")
		natsT.AddEndpoints(root, endpoints)
	}

	// HTTP transport
	{
		r := gin.Default()
		r.Use(httpT.CORSMiddleware(cmd.String("cors-origin")))

		httpT.AddRouters(r, endpoints, extract.PlainText{})

		mcpEndpoints := make(map[mcp.MCPMethod]mcpE.MCPEndpoint)
		mcpEndpoints[mcp.MethodInitialize] = mcpE.InitializeEndpoint(svc)
		mcpEndpoints[mcp.MethodPing] = mcpE.PingEndpoint(svc)
		mcpEndpoints[mcp.MethodToolsList] = mcpE.ListToolsEndpoint(svc)
		mcpEndpoints[mcp.MethodToolsCall] = mcpE.CallToolEndpoint(svc)
		httpT.AddStreamableRouters(r, mcpEndpoints)

		httpAddr := cmd.String("http-addr")
		go r.Run(httpAddr)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sign := <-quit

	log.Info("graceful shutdown", zap.String("signal", sign.String()))
	return nil
}

func makeEmbedder(cfg paperqa.Config) (*embedding.Adapter, error) {
	var provider embedding.Provider

	switch cfg.Embedding.Provider {
	case embedding.ProviderTypeOpenAI:
		p, err := embedding.NewOpenAIProvider(cfg.Embedding)
		if err != nil {
			return nil, err
		}

		provider = p

	case embedding.ProviderTypeOllama:
		provider = embedding.NewOllamaProvider(cfg.Embedding)

	default:
		return nil, errors.New("unsupported embedding provider: " + string(cfg.Embedding.Provider))
	}

	return embedding.NewAdapter(provider, cfg.Embedding), nil
}

func makeGenerator(cfg paperqa.Config) (generate.Provider, error) {
	switch cfg.Generate.Provider {
	case generate.ProviderTypeNone:
		return generate.Disabled{}, nil

	case generate.ProviderTypeOllama:
		return generate.NewOllamaProvider(cfg.Generate), nil

	case generate.ProviderTypeOpenAI:
		return generate.NewOpenAIProvider(cfg.Generate)

	default:
		return nil, errors.New("unsupported generative provider: " + string(cfg.Generate.Provider))
	}
}

func makeStore(cfg paperqa.Config) (persistence.Store, error) {
	switch cfg.Persistence.Backend {
	case "", "file":
		return fileP.NewStore(cfg.Persistence.Path)

	case "chromem":
		return chromemP.NewStore(cfg.Persistence)

	default:
		return nil, errors.New("unsupported persistence backend: " + cfg.Persistence.Backend)
	}
}
