package processor

import (
	"context"
	"errors"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/scorer"
	"resume-fit-go/internal/storage"
)

// CachedSimilarityScorer 给语义相似度计算加一层Redis缓存, 技能对归一化后作为缓存键
type CachedSimilarityScorer struct {
	next  scorer.SimilarityScorer
	redis *storage.Redis
}

var _ scorer.SimilarityScorer = (*CachedSimilarityScorer)(nil)

// NewCachedSimilarityScorer 包装底层相似度计算器, redis为nil时直接透传
func NewCachedSimilarityScorer(next scorer.SimilarityScorer, redis *storage.Redis) *CachedSimilarityScorer {
	return &CachedSimilarityScorer{
		next:  next,
		redis: redis,
	}
}

// Similarity 先查缓存, 未命中再调底层并回填
func (c *CachedSimilarityScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	if c.redis != nil {
		sim, err := c.redis.GetSkillSimilarityCache(ctx, a, b)
		if err == nil {
			return sim, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Msg("读取相似度缓存失败")
		}
	}

	sim, err := c.next.Similarity(ctx, a, b)
	if err != nil {
		return 0, err
	}

	if c.redis != nil {
		if err := c.redis.SetSkillSimilarityCache(ctx, a, b, sim); err != nil {
			logger.Warn().Err(err).Msg("写入相似度缓存失败")
		}
	}
	return sim, nil
}
