package customdict

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

// fakeSets keeps Redis sets in memory.
type fakeSets struct {
	sets map[string]map[string]struct{}
	err  error
}

func newFakeSets() *fakeSets {
	return &fakeSets{sets: make(map[string]map[string]struct{})}
}

func (f *fakeSets) SAdd(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	set, ok := f.sets[key]
	if !ok {
		set = make(map[string]struct{})
		f.sets[key] = set
	}
	var added int64
	for _, m := range members {
		s := m.(string)
		if _, ok := set[s]; !ok {
			set[s] = struct{}{}
			added++
		}
	}
	return redis.NewIntResult(added, nil)
}

func (f *fakeSets) SRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var removed int64
	for _, m := range members {
		if _, ok := f.sets[key][m.(string)]; ok {
			delete(f.sets[key], m.(string))
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (f *fakeSets) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	if f.err != nil {
		return redis.NewStringSliceResult(nil, f.err)
	}
	var out []string
	for m := range f.sets[key] {
		out = append(out, m)
	}
	sort.Strings(out)
	return redis.NewStringSliceResult(out, nil)
}

func TestAddRemoveWords(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSets()
	cd := newDict(fake, "")

	require.NoError(t, cd.Add(ctx, lexicon.Tagalog, "Jeepney", " sari-sari ", ""))
	require.NoError(t, cd.Add(ctx, lexicon.English, "selfie"))

	words, err := cd.Words(ctx, lexicon.Tagalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"jeepney", "sari-sari"}, words)
	assert.Contains(t, fake.sets, "taglid:custom_dict:tgl")
	assert.Contains(t, fake.sets, "taglid:custom_dict:eng")

	require.NoError(t, cd.Remove(ctx, lexicon.Tagalog, "JEEPNEY"))
	words, err = cd.Words(ctx, lexicon.Tagalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"sari-sari"}, words)

	// blank input never reaches Redis
	fake.err = errors.New("unreachable")
	assert.NoError(t, cd.Add(ctx, lexicon.English, " "))
}

func TestOverlayFeedsLoader(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSets()
	cd := newDict(fake, "test")
	require.NoError(t, cd.Add(ctx, lexicon.Tagalog, "jeepney"))

	l := lexicon.DefaultLoader("../../pkg/taglid/testdata/resources")
	l.Overlays = append(l.Overlays, cd)
	res, err := l.Load(ctx)
	require.NoError(t, err)
	assert.True(t, res.InDictionary(lexicon.Tagalog, "jeepney"))
	assert.False(t, res.InDictionary(lexicon.English, "jeepney"))
}

func TestRedisErrorsPropagate(t *testing.T) {
	fake := newFakeSets()
	fake.err = errors.New("connection refused")
	cd := newDict(fake, "")

	_, err := cd.Words(context.Background(), lexicon.English)
	assert.ErrorContains(t, err, "connection refused")

	l := lexicon.DefaultLoader("../../pkg/taglid/testdata/resources")
	l.Overlays = []lexicon.Overlay{cd}
	_, err = l.Load(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrResourceLoad)
}
