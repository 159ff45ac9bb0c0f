package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"

	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

// List caches the List result of one kind. Writes pass through, bump the
// kind's generation and then drop the cached list. A list read from the store
// is only cached when no write bumped the generation in the meantime. Redis
// failures fall back to the inner repository.
type List[T models.Record] struct {
	inner  repository.Repository[T]
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
	logs   *log.Entry
}

func NewList[T models.Record](
	inner repository.Repository[T], client *redis.Client, kind models.Kind, ttl time.Duration,
) *List[T] {
	return &List[T]{
		inner:  inner,
		client: client,
		key:    ListKey(kind.String()),
		genKey: GenerationKey(kind.String()),
		ttl:    ttl,
		logs: log.WithFields(log.Fields{
			"package": "portfolio", "module": "cache", "kind": kind.String(),
		}),
	}
}

func (c *List[T]) List(ctx context.Context) ([]T, error) {
	cached, err := c.client.Get(ctx, c.key).Bytes()
	if err == nil {
		var records []T
		if err := json.Unmarshal(cached, &records); err == nil {
			return records, nil
		}
		c.logs.Warn("Dropping undecodable cached list")
	} else if !errors.Is(err, redis.Nil) {
		c.logs.WithError(err).Warn("Cache read failed")
	}

	gen, genErr := c.generation(ctx)
	records, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return records, nil
	}
	if payload, err := json.Marshal(records); err == nil {
		if err := c.store(ctx, gen, payload); err != nil {
			c.logs.WithError(err).Warn("Cache write failed")
		}
	}
	return records, nil
}

func (c *List[T]) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store writes payload unless the generation moved past gen.
func (c *List[T]) store(ctx context.Context, gen int64, payload []byte) error {
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, c.genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, payload, c.ttl)
			return nil
		})
		return err
	}, c.genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *List[T]) Create(ctx context.Context, rec T) (*T, error) {
	created, err := c.inner.Create(ctx, rec)
	c.invalidate(ctx)
	return created, err
}

func (c *List[T]) Update(ctx context.Context, id int64, rec T) (*T, error) {
	updated, err := c.inner.Update(ctx, id, rec)
	c.invalidate(ctx)
	return updated, err
}

func (c *List[T]) Delete(ctx context.Context, id int64) error {
	err := c.inner.Delete(ctx, id)
	c.invalidate(ctx)
	return err
}

func (c *List[T]) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, c.genKey).Err(); err != nil {
		c.logs.WithError(err).Warn("Cache generation bump failed")
	}
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		c.logs.WithError(err).Warn("Cache invalidation failed")
	}
}

// Wrap puts every repository of set behind a list cache.
func Wrap(set repository.Set, client *redis.Client, ttl time.Duration) repository.Set {
	if client == nil {
		return set
	}
	return repository.Set{
		Projects:       NewList(set.Projects, client, models.KindProjects, ttl),
		Blogs:          NewList(set.Blogs, client, models.KindBlogs, ttl),
		Certifications: NewList(set.Certifications, client, models.KindCertifications, ttl),
		Achievements:   NewList(set.Achievements, client, models.KindAchievements, ttl),
		Volunteering:   NewList(set.Volunteering, client, models.KindVolunteering, ttl),
	}
}
