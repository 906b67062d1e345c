// Package titlenorm holds what every title normalizer shares: the prompt, the
// category vocabulary and response parsing. Providers live in subpackages
package titlenorm

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"grocer/internal/core/normalize"
	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/validate"
	"grocer/internal/services/groceryimport/domain"
)

// Categories is the fixed vocabulary a model may answer with
var Categories = []string{"dairy", "produce", "meat", "bakery", "pantry", "frozen", "beverages", "snacks", "household", "other"}

// SystemPrompt instructs a model to answer with one JSON object
var SystemPrompt = `You classify grocery products from online order history.
Given one product title, answer with a single JSON object and nothing else, using exactly these keys:
{
  "canonical_name": "short everyday name shoppers would use, e.g. Whole Milk, Sourdough Bread, Ground Beef 80/20",
  "category": "one of: ` + strings.Join(Categories, ", ") + `",
  "brand": "brand name, or empty string if none",
  "unit_size": "package size such as 1 gallon, 12 oz, 1 lb, or empty string if unclear"
}
Titles that describe the same product in different words must get the same canonical_name.`

// UserPrompt wraps one raw title
func UserPrompt(rawTitle string) string { return fmt.Sprintf("Product title: %q", rawTitle) }

// Parse decodes and validates a model answer.
// Code fences are tolerated, the category is folded into the vocabulary, and a missing name is a failure
func Parse(content string) (domain.NormalizedTitle, error) {
	body := strings.TrimSpace(content)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.NormalizedTitle{}, perr.Normalizationf("empty model response")
	}

	var nt domain.NormalizedTitle
	if err := json.Unmarshal([]byte(body), &nt); err != nil {
		return domain.NormalizedTitle{}, perr.Wrap(err, perr.ErrorCodeNormalization, "model response is not a JSON object")
	}
	nt.CanonicalName = normalize.Title(nt.CanonicalName)
	nt.Brand = normalize.Title(nt.Brand)
	nt.UnitSize = normalize.Title(nt.UnitSize)
	nt.Category = foldCategory(nt.Category)

	if err := validate.Struct(nt); err != nil {
		return domain.NormalizedTitle{}, perr.Wrap(err, perr.ErrorCodeNormalization, "invalid model response")
	}
	return nt, nil
}

func foldCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return ""
	}
	if slices.Contains(Categories, c) {
		return c
	}
	return "other"
}
