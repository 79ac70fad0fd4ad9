package templates

import (
	"context"
	"fmt"
)

// Template seed content. These ship with the service and are inserted
// once; operators maintain them out-of-band afterwards, so seeding never
// overwrites an existing row.
var builtin = []struct {
	Name        string
	Description string
	Body        string
}{
	{
		Name:        "Conservative Scoring",
		Description: "Dampen recommendations when the model is unsure",
		Body:        "Apply conservative scoring when confidence < 80%. Reduce the weight of low-volume segments and avoid promoting items with fewer than 100 observed interactions.",
	},
	{
		Name:        "Aggressive Growth",
		Description: "Favor fast-moving segments",
		Body:        "Boost scores for segments showing week-over-week engagement growth above 15%. Treat aggressive expansion candidates as high priority.",
	},
	{
		Name:        "Recency Focus",
		Description: "Weight recent behavior over historical averages",
		Body:        "Weight recent interactions from the last 14 days at 2x the historical baseline. Decay older signals linearly.",
	},
	{
		Name:        "Exclude Low Confidence",
		Description: "Drop unreliable candidates entirely",
		Body:        "Exclude any candidate with confidence < 50% from the result set instead of down-ranking it.",
	},
}

// Seeder is the single store capability seeding needs.
type Seeder interface {
	SeedTemplate(ctx context.Context, name, description, body string) error
}

// Seed inserts the built-in template set, skipping names that already
// have a template row.
func Seed(ctx context.Context, store Seeder) error {
	for _, t := range builtin {
		if err := store.SeedTemplate(ctx, t.Name, t.Description, t.Body); err != nil {
			return fmt.Errorf("seed templates: %w", err)
		}
	}
	return nil
}
