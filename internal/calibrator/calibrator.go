// Package calibrator implements the Threshold Calibrator (§4.7): per
// language, it derives max_distance and min_similarity from recorded
// semantic-search distance observations and persists them so the
// Retrieval Engine's semantic sub-search can reject results that fall
// outside a language's own observed distribution instead of a single
// global cutoff.
package calibrator

import (
	"sort"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/store"
)

// Calibrator reads and writes threshold_calibration rows. The
// bootstrap-vs-production sampling switch (§4.7) governs whether an
// observation gets recorded at all, and lives in the Retrieval Engine
// next to the code that produces observations; Calibrator only computes
// and persists thresholds from whatever was recorded.
type Calibrator struct {
	store *store.Store
}

// New builds a Calibrator over st.
func New(st *store.Store) *Calibrator {
	return &Calibrator{store: st}
}

// Proposal is one language's computed thresholds, before or after persisting.
type Proposal struct {
	Language      string
	MaxDistance   float32
	MinSimilarity float32
	SampleCount   uint32
}

// Calibrate computes p10/p90 over every observation recorded for language
// and, unless dryRun, persists max_distance=p90, min_similarity=1-p10
// (§4.7). A dry run returns the proposal without writing it.
func (c *Calibrator) Calibrate(language string, dryRun bool) (Proposal, error) {
	observations, err := c.store.ReadObservations(language, maxObservationsRead)
	if err != nil {
		return Proposal{}, apperr.Wrap(apperr.Internal, err, "read observations for %s", language)
	}
	if len(observations) == 0 {
		return Proposal{}, apperr.New(apperr.InvalidInput, "no distance observations recorded for %q", language)
	}

	sort.Slice(observations, func(i, j int) bool { return observations[i] < observations[j] })
	p10 := percentile(observations, 0.10)
	p90 := percentile(observations, 0.90)

	proposal := Proposal{
		Language:      language,
		MaxDistance:   p90,
		MinSimilarity: 1 - p10,
		SampleCount:   uint32(len(observations)),
	}

	if dryRun {
		return proposal, nil
	}

	if err := c.store.PutCalibration(language, proposal.MaxDistance, proposal.MinSimilarity, proposal.SampleCount); err != nil {
		return Proposal{}, apperr.Wrap(apperr.Internal, err, "persist calibration for %s", language)
	}
	return proposal, nil
}

// maxObservationsRead bounds how many of a language's most recent
// observations Calibrate considers; beyond this a language's distribution
// has long since stabilized and re-reading the entire history just adds
// query cost for no change to p10/p90.
const maxObservationsRead = 10000

// percentile returns the value at fraction p (0..1) of sorted, using
// linear interpolation between the two nearest ranks. sorted must already
// be ascending.
func percentile(sorted []float32, p float64) float32 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + float32(frac)*(sorted[hi]-sorted[lo])
}

// MaybeAutoCalibrate triggers Calibrate for language exactly when its
// observation count has just crossed the bootstrap threshold (§4.7:
// "triggered automatically when a language crosses 500"). beforeCount is
// the count prior to the observation that was just recorded.
func MaybeAutoCalibrate(c *Calibrator, language string, beforeCount, afterCount int, threshold int) error {
	if beforeCount < threshold && afterCount >= threshold {
		_, err := c.Calibrate(language, false)
		return err
	}
	return nil
}

// LookupThresholds implements §4.7's lookup order for a query-time caller:
// per-language row, then the GlobalLanguage sentinel, then the
// compile-time defaults. It does not itself define the defaults — callers
// pass them so this package carries no dependency on the model package's
// constants beyond what's already in scope.
func (c *Calibrator) LookupThresholds(language string, defaultMaxDistance, defaultMinSimilarity float32) (maxDistance, minSimilarity float32, err error) {
	if calib, ok, lookupErr := c.store.GetCalibration(language); lookupErr == nil && ok {
		return calib.MaxDistance, calib.MinSimilarity, nil
	} else if lookupErr != nil {
		return 0, 0, apperr.Wrap(apperr.Internal, lookupErr, "lookup calibration for %s", language)
	}

	if calib, ok, lookupErr := c.store.GetCalibration(model.GlobalLanguage); lookupErr == nil && ok {
		return calib.MaxDistance, calib.MinSimilarity, nil
	} else if lookupErr != nil {
		return 0, 0, apperr.Wrap(apperr.Internal, lookupErr, "lookup global calibration")
	}

	return defaultMaxDistance, defaultMinSimilarity, nil
}
