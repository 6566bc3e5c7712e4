// Package hasher contains the default [domain.Hasher] implementation.
package hasher

import (
	"fmt"
	"hash/fnv"

	"github.com/goccy/go-json"
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
)

// Hasher implements domain.Hasher. Values are hashed through their JSON form,
// so numbers of different Go types but equal value land in the same bucket.
type Hasher struct{}

// NewHasher returns a new implementation of domain.Hasher.
func NewHasher() domain.Hasher {
	return &Hasher{}
}

// Hash implements domain.Hasher.
func (h *Hasher) Hash(a any) (uint64, error) {
	b, err := json.Marshal(a)
	if err != nil {
		// NaN, channels, funcs: fall back to the printed form
		b = fmt.Appendf(nil, "%T:%v", a, a)
	}
	hasher := fnv.New64a()
	if _, err = hasher.Write(b); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
