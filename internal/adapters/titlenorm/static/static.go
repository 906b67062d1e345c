// Package static is the offline normalizer: the cleaned raw title is the canonical name
package static

import (
	"context"

	"grocer/internal/core/normalize"
	perr "grocer/internal/platform/errors"
	"grocer/internal/services/groceryimport/domain"
)

// Normalizer implements domain.Normalizer without any network
type Normalizer struct{}

// New constructs the offline normalizer
func New() Normalizer { return Normalizer{} }

// Normalize returns the title with controls dropped and whitespace collapsed
func (Normalizer) Normalize(ctx context.Context, rawTitle string) (domain.NormalizedTitle, error) {
	if err := ctx.Err(); err != nil {
		return domain.NormalizedTitle{}, perr.Wrap(err, perr.ErrorCodeNormalization, "static normalize")
	}
	name := normalize.Title(rawTitle)
	if name == "" {
		return domain.NormalizedTitle{}, perr.Normalizationf("blank title")
	}
	return domain.NormalizedTitle{CanonicalName: name}, nil
}
