package processor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/mealie-translate/internal/config"
	"codeberg.org/snonux/mealie-translate/internal/diff"
	"codeberg.org/snonux/mealie-translate/internal/recipe"
	"codeberg.org/snonux/mealie-translate/internal/translator"
)

// Pacing between items and batches, to stay friendly to the store and
// provider rate limits.
const (
	itemPause  = time.Second
	batchPause = 2 * time.Second
)

// Store is the recipe store surface the processor depends on.
type Store interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	Get(ctx context.Context, slug string) (*recipe.Recipe, error)
	Update(ctx context.Context, slug string, r *recipe.Recipe) error
	MarkProcessed(ctx context.Context, slug string) error
}

// RunStats accumulates the outcome counters of one run.
type RunStats struct {
	TotalRecipes int
	Processed    int
	Skipped      int
	Failed       int
}

// Processor orchestrates the translation run: listing, eligibility
// filtering, batching and per-recipe processing with failure isolation.
type Processor struct {
	settings   *config.Settings
	store      Store
	translator translator.Provider
	logger     zerolog.Logger

	// sleep is the pacing hook; tests replace it.
	sleep func(time.Duration)
}

// New creates a processor over the given store and translation provider.
func New(settings *config.Settings, store Store, provider translator.Provider, logger zerolog.Logger) *Processor {
	return &Processor{
		settings:   settings,
		store:      store,
		translator: provider,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// ProcessAllRecipes translates every unprocessed recipe in the store,
// in batches. One bad recipe never aborts the run; it is counted as
// failed and processing continues.
func (p *Processor) ProcessAllRecipes(ctx context.Context) (RunStats, error) {
	p.logger.Info().Msg("Starting recipe translation process")

	p.logger.Info().Msg("Fetching all recipes from the Mealie server")
	all, err := p.store.List(ctx)
	if err != nil {
		return RunStats{}, err
	}
	if len(all) == 0 {
		p.logger.Warn().Msg("No recipes found")
		return RunStats{}, nil
	}

	eligible := p.filterUnprocessed(ctx, all)
	if len(eligible) == 0 {
		p.logger.Info().Msg("No unprocessed recipes found")
		return RunStats{TotalRecipes: len(all), Skipped: len(all)}, nil
	}

	if p.settings.DryRun && len(eligible) > p.settings.DryRunLimit {
		p.logger.Info().
			Int("limit", p.settings.DryRunLimit).
			Int("eligible", len(eligible)).
			Msg("Dry run: limiting preview to the first recipes")
		eligible = eligible[:p.settings.DryRunLimit]
	}

	p.logger.Info().Int("count", len(eligible)).Msg("Found unprocessed recipes to translate")

	stats := RunStats{TotalRecipes: len(eligible)}
	batchSize := p.settings.BatchSize
	totalBatches := (len(eligible) + batchSize - 1) / batchSize

	for batchNum := 0; batchNum < totalBatches; batchNum++ {
		start := batchNum * batchSize
		end := start + batchSize
		if end > len(eligible) {
			end = len(eligible)
		}
		batch := eligible[start:end]

		p.logger.Info().
			Int("batch", batchNum+1).
			Int("total_batches", totalBatches).
			Int("size", len(batch)).
			Msg("Processing batch")

		batchStats := p.processBatch(ctx, batch)
		stats.Processed += batchStats.Processed
		stats.Skipped += batchStats.Skipped
		stats.Failed += batchStats.Failed

		p.logger.Info().
			Int("processed", stats.Processed).
			Int("failed", stats.Failed).
			Int("remaining", stats.TotalRecipes-stats.Processed-stats.Failed-stats.Skipped).
			Msg("Batch complete")

		if batchNum < totalBatches-1 {
			p.sleep(batchPause)
		}
	}

	p.logger.Info().Int("processed", stats.Processed).Msg("Translation complete")
	return stats, nil
}

// ProcessSingleRecipe translates one recipe by slug. An already
// processed recipe is a no-op success.
func (p *Processor) ProcessSingleRecipe(ctx context.Context, slug string) error {
	p.logger.Info().Str("recipe", slug).Msg("Processing single recipe")

	full, err := p.store.Get(ctx, slug)
	if err != nil {
		p.logger.Error().Err(err).Str("recipe", slug).Msg("Recipe not found")
		return err
	}
	if full.IsProcessed() {
		p.logger.Info().Str("recipe", slug).Msg("Recipe is already processed")
		return nil
	}

	if p.processEligible(ctx, slug, full) != outcomeProcessed {
		return &processError{slug: slug}
	}
	p.logger.Info().Str("recipe", slug).Msg("Successfully processed recipe")
	return nil
}

// filterUnprocessed re-fetches each listed recipe and keeps the ones
// without the processed marker. A recipe whose detail fetch fails is
// dropped here; it stays unprocessed and is picked up by a later run.
func (p *Processor) filterUnprocessed(ctx context.Context, all []recipe.Recipe) []recipe.Recipe {
	var eligible []recipe.Recipe
	for _, r := range all {
		slug := r.Identifier()
		if slug == "" {
			continue
		}
		full, err := p.store.Get(ctx, slug)
		if err != nil {
			p.logger.Error().Err(err).Str("recipe", slug).Msg("Failed to fetch recipe details during filtering")
			continue
		}
		if full.IsProcessed() {
			p.logger.Debug().Str("recipe", full.Name).Msg("Skipping already processed recipe")
			continue
		}
		eligible = append(eligible, r)
	}
	return eligible
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// processBatch runs the per-item step for every recipe of one batch,
// pacing after each processed or failed item.
func (p *Processor) processBatch(ctx context.Context, batch []recipe.Recipe) RunStats {
	var stats RunStats
	for _, r := range batch {
		slug := r.Identifier()
		if slug == "" {
			p.logger.Warn().Msg("Recipe missing slug/id, skipping")
			stats.Skipped++
			continue
		}

		switch p.processItem(ctx, slug) {
		case outcomeProcessed:
			stats.Processed++
			p.sleep(itemPause)
		case outcomeSkipped:
			stats.Skipped++
		case outcomeFailed:
			stats.Failed++
			p.sleep(itemPause)
		}
	}
	return stats
}

// processItem handles one recipe end to end. All failures are contained
// here and reported as an outcome, never as an error.
func (p *Processor) processItem(ctx context.Context, slug string) outcome {
	full, err := p.store.Get(ctx, slug)
	if err != nil {
		p.logger.Error().Err(err).Str("recipe", slug).Msg("Failed to fetch recipe details")
		return outcomeFailed
	}

	// Another run may have processed the recipe since the filter pass.
	if full.IsProcessed() {
		p.logger.Debug().Str("recipe", slug).Msg("Recipe already processed, skipping")
		return outcomeSkipped
	}

	return p.processEligible(ctx, slug, full)
}

// processEligible translates an already-fetched, unprocessed recipe and
// persists the result (or renders the dry-run diff).
func (p *Processor) processEligible(ctx context.Context, slug string, full *recipe.Recipe) outcome {
	translated, err := p.translator.TranslateRecipe(ctx, full, p.settings.TargetLanguage)
	if err != nil {
		p.logger.Error().Err(err).Str("recipe", slug).Msg("Failed to translate recipe")
		return outcomeFailed
	}

	if p.settings.DryRun {
		if diff.HasChanges(full, translated) {
			diff.LogDiff(p.logger, full.Name, full, translated)
		} else {
			p.logger.Info().Str("recipe", slug).Msg("Dry run: no changes for recipe")
		}
		return outcomeProcessed
	}

	if err := p.store.Update(ctx, slug, translated); err != nil {
		p.logger.Error().Err(err).Str("recipe", slug).Msg("Failed to update recipe")
		return outcomeFailed
	}

	if err := p.store.MarkProcessed(ctx, slug); err != nil {
		// The translation is already persisted; the next run's filter
		// recheck recovers the missing marker.
		p.logger.Warn().Err(err).Str("recipe", slug).Msg("Failed to mark recipe as processed")
	}

	p.logger.Info().Str("recipe", translated.Name).Msg("Successfully processed recipe")
	return outcomeProcessed
}

// processError reports a single-recipe run that did not succeed.
type processError struct {
	slug string
}

func (e *processError) Error() string {
	return "failed to process recipe " + e.slug
}
