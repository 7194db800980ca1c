package customdict

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

// DefaultKeyPrefix prefixes the per-language Redis sets.
const DefaultKeyPrefix = "taglid:custom_dict"

// setClient is the subset of redis.Cmdable used here.
type setClient interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// CustomDict stores user-added dictionary words in one Redis set per
// language. It satisfies lexicon.Overlay so the words are merged into the
// dictionaries at load time.
type CustomDict struct {
	client setClient
	prefix string
}

var _ lexicon.Overlay = (*CustomDict)(nil)

// New creates a CustomDict with the provided Redis client. An empty prefix
// means DefaultKeyPrefix.
func New(client redis.Cmdable, prefix string) *CustomDict {
	return newDict(client, prefix)
}

func newDict(client setClient, prefix string) *CustomDict {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &CustomDict{client: client, prefix: prefix}
}

func (cd *CustomDict) key(lang lexicon.Language) string {
	return fmt.Sprintf("%s:%s", cd.prefix, lang)
}

// Add inserts normalized words into the dictionary of lang.
func (cd *CustomDict) Add(ctx context.Context, lang lexicon.Language, words ...string) error {
	members := normalized(words)
	if len(members) == 0 {
		return nil
	}
	return cd.client.SAdd(ctx, cd.key(lang), members...).Err()
}

// Remove deletes words from the dictionary of lang.
func (cd *CustomDict) Remove(ctx context.Context, lang lexicon.Language, words ...string) error {
	members := normalized(words)
	if len(members) == 0 {
		return nil
	}
	return cd.client.SRem(ctx, cd.key(lang), members...).Err()
}

// Words returns all words stored for lang.
func (cd *CustomDict) Words(ctx context.Context, lang lexicon.Language) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key(lang)).Result()
}

func normalized(words []string) []interface{} {
	out := make([]interface{}, 0, len(words))
	for _, w := range words {
		if n := lexicon.Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
