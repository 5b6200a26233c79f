package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/yashp/portfolio-assistant/internal/ai"
	"github.com/yashp/portfolio-assistant/internal/assistant"
	"github.com/yashp/portfolio-assistant/internal/config"
	"github.com/yashp/portfolio-assistant/internal/filestore"
	"github.com/yashp/portfolio-assistant/internal/handler"
	"github.com/yashp/portfolio-assistant/internal/job"
	"github.com/yashp/portfolio-assistant/internal/knowledge"
	"github.com/yashp/portfolio-assistant/internal/middleware"
	"github.com/yashp/portfolio-assistant/internal/model"
	"github.com/yashp/portfolio-assistant/internal/schedule"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "assistant",
		Short: "portfolio assistant backend",
	}
	rootCmd.AddCommand(newRunCmd(), newEmbedCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the assistant server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	return cmd
}

func runServer(cfg *config.Config) error {
	ctx := context.Background()

	source, err := filestore.New(cfg.Knowledge.Store)
	if err != nil {
		return fmt.Errorf("init knowledge source: %w", err)
	}
	store := knowledge.NewStore(
		source,
		cfg.Knowledge.Key,
		cfg.Knowledge.QueryCacheSize,
		time.Duration(cfg.Knowledge.QueryCacheTTLMins)*time.Minute,
	)
	if err := store.Load(ctx); err != nil {
		return err
	}

	generator, err := buildGenerator(cfg.AI)
	if err != nil {
		return err
	}
	if generator == nil {
		logutil.GetLogger(ctx).Warn("no generation delegate configured, answers will be local only")
	}

	responder := assistant.NewResponder(store, generator, assistant.Options{
		RateWindow:      time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		RateMax:         cfg.RateLimit.MaxRequests,
		GenerateTimeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		MaxHistory:      cfg.AI.MaxHistory,
		TopK:            cfg.AI.TopK,
		Rand:            rand.New(rand.NewSource(time.Now().UnixNano())),
	})

	deps := handler.RouterDeps{
		Chat:      handler.NewChatHandler(responder),
		Knowledge: handler.NewKnowledgeHandler(store),
	}
	if cfg.Admin.PasswordHash != "" {
		deps.JWTSecret = []byte(cfg.Admin.JWTSecret)
		deps.Admin = handler.NewAdminHandler(
			cfg.Admin.PasswordHash,
			deps.JWTSecret,
			time.Duration(cfg.Admin.TTLHours)*time.Hour,
			store,
			responder,
		)
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.New()
	if err := scheduler.AddJob(job.NewRateLimitSweepJob(responder.Limiter()), "* * * * *"); err != nil {
		return err
	}
	if err := scheduler.AddJob(job.NewKnowledgeStatsJob(store), "0 * * * *"); err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	scheduler.Start(runCtx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening",
		zap.Int("port", cfg.Port),
		zap.Int("chunks", store.Len()),
	)
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(ctx).Error("server error", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	logutil.GetLogger(ctx).Info("server stopping...")
	return nil
}

func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		provider, err := ai.NewProvider(pc.Name, pc.Data)
		if err != nil {
			return nil, fmt.Errorf("init ai provider %s: %w", pc.Name, err)
		}
		if pc.Model == "" {
			return nil, fmt.Errorf("ai provider %s: model is required", pc.Name)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      pc.Name,
			Generator: ai.NewGenerator(provider, pc.Model),
		})
	}
	group := ai.NewGroupGenerator(entries)
	if group == nil {
		return nil, nil
	}
	return ai.NewRetryGenerator(group, cfg.MaxRetries, 500*time.Millisecond), nil
}

func newEmbedCmd() *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "embed authored chunks into a knowledge-base file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" || outPath == "" {
				return fmt.Errorf("--in and --out are required")
			}
			data, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read chunks: %w", err)
			}
			var chunks []model.KnowledgeChunk
			if err := json.Unmarshal(data, &chunks); err != nil {
				return fmt.Errorf("decode chunks: %w", err)
			}
			if len(chunks) == 0 {
				return fmt.Errorf("no chunks in %s", inPath)
			}
			for i := range chunks {
				chunk := &chunks[i]
				if chunk.ID == "" {
					return fmt.Errorf("chunk %d has no id", i)
				}
				if !chunk.Metadata.Type.Valid() {
					return fmt.Errorf("chunk %q has invalid type %q", chunk.ID, chunk.Metadata.Type)
				}
				chunk.Embedding = knowledge.Embed(chunk.Text, chunk.Metadata.Tags)
			}
			out, err := json.MarshalIndent(chunks, "", "  ")
			if err != nil {
				return fmt.Errorf("encode knowledge base: %w", err)
			}
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return fmt.Errorf("write knowledge base: %w", err)
			}
			fmt.Printf("embedded %d chunks into %s\n", len(chunks), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "authored chunks json")
	cmd.Flags().StringVar(&outPath, "out", "", "output knowledge-base json")
	return cmd
}
