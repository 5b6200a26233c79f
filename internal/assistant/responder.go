package assistant

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yashp/portfolio-assistant/internal/ai"
	"github.com/yashp/portfolio-assistant/internal/knowledge"
	"github.com/yashp/portfolio-assistant/internal/model"
)

const (
	rateLimitResponse = "Whoa, slow down! Give me a second to catch up, then ask away."
	defaultClientID   = "anonymous"
)

// Options tunes the pipeline. Zero values get sensible defaults so tests
// can construct a Responder with just a store.
type Options struct {
	RateWindow      time.Duration
	RateMax         int
	GenerateTimeout time.Duration
	MaxHistory      int
	TopK            int
	Rand            *rand.Rand
}

// Responder runs a query through the full pipeline: rate limit,
// sanitize, safety gate, easter eggs, mess detection, conversational
// patterns, retrieval, delegate generation, and finally the local
// fallback. Every input resolves to a well-formed AIResponse; nothing
// here returns an error to the caller.
type Responder struct {
	limiter   *RateLimiter
	store     *knowledge.Store
	generator ai.IGenerator

	timeout    time.Duration
	maxHistory int
	topK       int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewResponder wires the pipeline. generator may be nil, in which case
// every answer is produced locally.
func NewResponder(store *knowledge.Store, generator ai.IGenerator, opts Options) *Responder {
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 10 * time.Second
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 6
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{
		limiter:    NewRateLimiter(opts.RateWindow, opts.RateMax),
		store:      store,
		generator:  generator,
		timeout:    opts.GenerateTimeout,
		maxHistory: opts.MaxHistory,
		topK:       opts.TopK,
		rng:        rng,
	}
}

// Limiter exposes the rate-limit store for the sweep job and stats.
func (r *Responder) Limiter() *RateLimiter {
	return r.limiter
}

// Respond is the pipeline entry point.
func (r *Responder) Respond(ctx context.Context, query, clientID string, history []model.ChatMessage) model.AIResponse {
	if clientID == "" {
		clientID = defaultClientID
	}
	logger := logutil.GetLogger(ctx).With(zap.String("client_id", clientID))

	if !r.limiter.Allow(clientID) {
		logger.Warn("rate limit hit")
		return model.AIResponse{Text: rateLimitResponse, Source: model.SourceSecurity}
	}

	clean := Sanitize(query)

	if check := ClassifySafety(clean); !check.Safe {
		logger.Warn("unsafe query rejected",
			zap.String("threat", string(check.ThreatType)), zap.String("reason", check.Reason))
		return model.AIResponse{Text: threatResponse(check.ThreatType), Source: model.SourceSecurity}
	}

	if egg, ok := MatchEasterEgg(clean); ok {
		return model.AIResponse{Text: egg, Source: model.SourcePattern}
	}

	if kind := ClassifyMess(clean); kind != MessNone {
		logger.Debug("mess query redirected", zap.Int("kind", int(kind)))
		return model.AIResponse{Text: r.pickMess(kind), Source: model.SourceMess}
	}

	if reply, ok := r.pickPattern(clean); ok {
		return model.AIResponse{Text: reply, Source: model.SourcePattern}
	}

	// Retrieval always runs: the results feed the delegate prompt and
	// double as the last-resort answer.
	results := r.store.Search(clean, r.topK)

	if text, ok := r.generate(ctx, clean, results, history); ok {
		return model.AIResponse{Text: text, Source: model.SourceAPI}
	}

	text, action := Fallback(clean, results)
	return model.AIResponse{Text: text, Action: action, Source: model.SourceFallback}
}

func (r *Responder) generate(ctx context.Context, query string, results []knowledge.SearchResult, history []model.ChatMessage) (string, bool) {
	if r.generator == nil {
		return "", false
	}
	contexts := make([]string, 0, len(results))
	for _, result := range results {
		contexts = append(contexts, result.Chunk.Text)
	}
	if len(history) > r.maxHistory {
		history = history[len(history)-r.maxHistory:]
	}
	prompt := ai.BuildPrompt(query, contexts, history)

	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	text, err := r.generator.Generate(genCtx, prompt)
	if err != nil {
		logutil.GetLogger(ctx).Warn("generation delegate failed, using fallback", zap.Error(err))
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		logutil.GetLogger(ctx).Warn("generation delegate returned empty text, using fallback")
		return "", false
	}
	return text, true
}

func (r *Responder) pickMess(kind MessKind) string {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return messResponse(kind, r.rng)
}

func (r *Responder) pickPattern(text string) (string, bool) {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return MatchPattern(text, r.rng)
}
