package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/taglid/internal/customdict"
	"github.com/cognicore/taglid/internal/logging"
	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
	"github.com/cognicore/taglid/pkg/taglid/ingest"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
	"github.com/cognicore/taglid/pkg/taglid/morph"
	"github.com/cognicore/taglid/pkg/taglid/spell"
	"github.com/cognicore/taglid/pkg/taglid/store"
	"github.com/cognicore/taglid/pkg/taglid/store/memstore"
	"github.com/cognicore/taglid/pkg/taglid/store/sqlite"
)

// Loader loads resources and constructs components from a Config.
type Loader struct {
	Config *Config
	Logger *slog.Logger
	// Overlays are merged into the dictionaries in addition to the Redis
	// overlay configured in Config.Redis.
	Overlays []lexicon.Overlay
}

// Components holds everything built from one configuration.
type Components struct {
	Resources  *lexicon.Resources
	Classifier *classify.Classifier
	Corrector  spell.Corrector // nil when max_edits is 0
	Text       *ingest.Pipeline
	Dataset    *dataset.Pipeline
	CustomDict *customdict.CustomDict // nil without redis.addr

	redis *redis.Client
}

// Load reads all resource files and returns initialized components.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := l.Logger
	if log == nil {
		log = logging.Discard()
	}

	comp := &Components{}

	rl := lexicon.DefaultLoader(cfg.Resources.Dir)
	rl.Logger = log
	rl.Overlays = append(rl.Overlays, l.Overlays...)

	if cfg.Redis.Addr != "" {
		comp.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		comp.CustomDict = customdict.New(comp.redis, cfg.Redis.KeyPrefix)
		rl.Overlays = append(rl.Overlays, comp.CustomDict)
	}

	res, err := rl.Load(ctx)
	if err != nil {
		comp.Close()
		return nil, err
	}
	comp.Resources = res

	opts := []classify.Option{
		classify.WithReducer(morph.New()),
		classify.WithMaxEdits(cfg.Classifier.MaxEdits),
		classify.WithMaxDepth(cfg.Classifier.MaxDepth),
		classify.WithMinCorrectionLength(cfg.Classifier.MinCorrectionLength),
		classify.WithCapitalizedEntities(cfg.Classifier.CapitalizedEntities),
		classify.WithLogger(log),
	}
	if cfg.Classifier.MaxEdits > 0 {
		comp.Corrector = spell.NewFuzzyCorrector(res, cfg.Classifier.MaxEdits)
		opts = append(opts, classify.WithCorrector(comp.Corrector))
	}
	comp.Classifier = classify.New(res, opts...)

	comp.Text = ingest.NewPipeline(ingest.NewTokenizer(), comp.Classifier)
	comp.Text.SetStripMarkup(cfg.Classifier.StripMarkup)

	comp.Dataset = dataset.NewPipeline(comp.Text, log)
	comp.Dataset.Workers = cfg.Dataset.Workers

	return comp, nil
}

// Close releases the Redis connection, if any.
func (c *Components) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

// OpenStore opens the run store selected by cfg: SQLite when a path is set,
// an in-memory store otherwise.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	if cfg.Path == "" {
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, cfg.Path)
}
