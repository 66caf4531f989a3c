package memory

import (
	"time"

	"codal-docs-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const subjectsKey = "subjects"

// TaxonomyCache holds the subject list until it is explicitly refreshed.
// Subtopics are not cached: they are re-read on every subject change.
type TaxonomyCache struct {
	cache *cache.Cache
}

func NewTaxonomyCache() *TaxonomyCache {
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &TaxonomyCache{
		cache: c,
	}
}

func (r *TaxonomyCache) SetSubjects(subjects []*entity.Subject) {
	r.cache.Set(subjectsKey, cloneSubjects(subjects), cache.NoExpiration)
}

func (r *TaxonomyCache) Subjects() ([]*entity.Subject, bool) {
	if x, found := r.cache.Get(subjectsKey); found {
		return cloneSubjects(x.([]*entity.Subject)), true
	}
	return nil, false
}

func (r *TaxonomyCache) InvalidateSubjects() {
	r.cache.Delete(subjectsKey)
}

// Callers get their own copies; the cached slice is never handed out.
func cloneSubjects(in []*entity.Subject) []*entity.Subject {
	out := make([]*entity.Subject, len(in))
	for i, s := range in {
		c := *s
		out[i] = &c
	}
	return out
}
