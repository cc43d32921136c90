package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"quiz-session/internal/cache"
	"quiz-session/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachingGenerator memoizes successful generation responses per document.
// Identical requests in flight at the same time share one upstream call.
type CachingGenerator struct {
	next    domain.QuizGenerator
	cache   domain.Cache
	ttl     time.Duration
	logger  *zap.Logger
	sfGroup singleflight.Group
}

// NewCachingGenerator wraps next with a cache. With a nil cache it returns next unchanged.
func NewCachingGenerator(next domain.QuizGenerator, c domain.Cache, ttl time.Duration, logger *zap.Logger) domain.QuizGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		logger.Warn("CachingGenerator initialized with nil cache. Generation results will not be cached.")
		return next
	}
	return &CachingGenerator{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// GenerationCacheKey derives the cache key from the document bytes and options.
func GenerationCacheKey(req domain.GenerationRequest) string {
	contentHash := sha256.Sum256(req.File.Content)
	focusHash := sha256.Sum256([]byte(req.Options.UserFocus))
	return cache.GenerateCacheKey("generation", "mcq",
		hex.EncodeToString(contentHash[:]),
		strconv.Itoa(req.Options.NumQuestions),
		hex.EncodeToString(focusHash[:8]),
	)
}

// GenerateQuiz implements domain.QuizGenerator
func (g *CachingGenerator) GenerateQuiz(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	key := GenerationCacheKey(req)

	if resp, ok := g.lookup(ctx, key); ok {
		return resp, nil
	}

	res, err, shared := g.sfGroup.Do(key, func() (interface{}, error) {
		resp, err := g.next.GenerateQuiz(ctx, req)
		if err != nil {
			return nil, err
		}
		g.store(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		g.logger.Debug("Generation request shared with a concurrent caller", zap.String("key", key))
	}

	return cloneResponse(res.(*domain.GenerationResponse)), nil
}

func (g *CachingGenerator) lookup(ctx context.Context, key string) (*domain.GenerationResponse, bool) {
	data, err := g.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			g.logger.Debug("Generation cache miss", zap.String("key", key))
		} else {
			g.logger.Error("Failed to get generation result from cache", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}
	if data == "" {
		return nil, false
	}

	var resp domain.GenerationResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		g.logger.Warn("Discarding undecodable cached generation result", zap.Error(err), zap.String("key", key))
		_ = g.cache.Delete(ctx, key)
		return nil, false
	}

	g.logger.Info("Generation cache hit", zap.String("key", key), zap.Int("questions", len(resp.Entries)))
	return &resp, true
}

// store caches resp only when it would load as a quiz; a malformed reply must
// not be replayed to later uploads of the same document.
func (g *CachingGenerator) store(ctx context.Context, key string, resp *domain.GenerationResponse) {
	if _, err := domain.LoadQuiz(resp); err != nil {
		g.logger.Debug("Not caching unusable generation result", zap.String("key", key), zap.Error(err))
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("Failed to marshal generation result for caching", zap.Error(err), zap.String("key", key))
		return
	}
	if err := g.cache.Set(ctx, key, string(data), g.ttl); err != nil {
		g.logger.Error("Failed to cache generation result", zap.Error(err), zap.String("key", key))
		return
	}
	g.logger.Debug("Cached generation result", zap.String("key", key), zap.Duration("ttl", g.ttl))
}

func cloneResponse(resp *domain.GenerationResponse) *domain.GenerationResponse {
	if resp == nil {
		return nil
	}
	out := &domain.GenerationResponse{Entries: make([]domain.GenerationEntry, len(resp.Entries))}
	for i, e := range resp.Entries {
		e.Options = append([]string(nil), e.Options...)
		if e.CorrectOption != nil {
			v := *e.CorrectOption
			e.CorrectOption = &v
		}
		out.Entries[i] = e
	}
	return out
}

var _ domain.QuizGenerator = (*CachingGenerator)(nil)
