package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"quiz-session/internal/cache"
	"quiz-session/internal/domain"
	"quiz-session/internal/logger"

	"go.uber.org/zap"
)

// FeedbackCacheExpiration is used when no TTL is configured.
const FeedbackCacheExpiration = 24 * time.Hour

// CachedFeedback is the cache entry for one feedback report
type CachedFeedback struct {
	Report *domain.FeedbackReport `json:"report"`
	Score  int                    `json:"score"`
	Total  int                    `json:"total"`
}

// cachingFeedbackProvider implements domain.FeedbackProvider on top of another provider
type cachingFeedbackProvider struct {
	next  domain.FeedbackProvider
	cache domain.Cache
	ttl   time.Duration
}

// NewCachingFeedbackProvider reuses the report of an identical earlier submission.
// With a nil cache it returns next unchanged.
func NewCachingFeedbackProvider(next domain.FeedbackProvider, c domain.Cache, ttl time.Duration) domain.FeedbackProvider {
	if c == nil {
		logger.Get().Warn("FeedbackCache: initialized with nil cache, feedback will not be cached.")
		return next
	}
	if ttl <= 0 {
		ttl = FeedbackCacheExpiration
	}
	return &cachingFeedbackProvider{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// FeedbackCacheKey derives the cache key from the full result payload.
// Map keys are marshaled in sorted order, so equal payloads hash equally.
func FeedbackCacheKey(payload *domain.ResultPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return cache.GenerateCacheKey("feedback", "report", hex.EncodeToString(sum[:])), nil
}

// GenerateFeedback implements domain.FeedbackProvider
func (p *cachingFeedbackProvider) GenerateFeedback(ctx context.Context, payload *domain.ResultPayload) (*domain.FeedbackReport, error) {
	key, err := FeedbackCacheKey(payload)
	if err != nil {
		logger.Get().Error("FeedbackCache: failed to derive cache key, bypassing cache", zap.Error(err))
		return p.next.GenerateFeedback(ctx, payload)
	}

	if report := p.get(ctx, key); report != nil {
		return report, nil
	}

	report, err := p.next.GenerateFeedback(ctx, payload)
	if err != nil {
		return nil, err
	}
	p.put(ctx, key, payload, report)
	return report, nil
}

func (p *cachingFeedbackProvider) get(ctx context.Context, key string) *domain.FeedbackReport {
	data, err := p.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("FeedbackCache: cache miss", zap.String("key", key))
		} else {
			logger.Get().Error("FeedbackCache: cache get failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}

	var entry CachedFeedback
	if err := json.Unmarshal([]byte(data), &entry); err != nil || entry.Report == nil {
		logger.Get().Warn("FeedbackCache: failed to unmarshal cached feedback", zap.Error(err), zap.String("key", key))
		_ = p.cache.Delete(ctx, key)
		return nil
	}

	logger.Get().Info("FeedbackCache: cache hit",
		zap.String("key", key),
		zap.Int("score", entry.Score),
		zap.Int("total", entry.Total))
	return entry.Report
}

func (p *cachingFeedbackProvider) put(ctx context.Context, key string, payload *domain.ResultPayload, report *domain.FeedbackReport) {
	if report.IsEmpty() {
		logger.Get().Debug("FeedbackCache: not caching empty report", zap.String("key", key))
		return
	}

	data, err := json.Marshal(CachedFeedback{Report: report, Score: payload.Score, Total: payload.TotalQuestions})
	if err != nil {
		logger.Get().Error("FeedbackCache: failed to marshal feedback", zap.Error(err), zap.String("key", key))
		return
	}
	if err := p.cache.Set(ctx, key, string(data), p.ttl); err != nil {
		logger.Get().Error("FeedbackCache: cache set failed", zap.Error(err), zap.String("key", key))
	}
}
