package editor

import "strings"

// previewPatterns maps keyword substrings to the advisory effect line
// shown when the draft mentions them. Matching is case-insensitive and
// purely textual: this table is the entire "simulation".
var previewPatterns = []struct {
	keywords []string
	effect   string
}{
	{
		keywords: []string{"conservative"},
		effect:   "Scores would be adjusted downward for uncertain matches",
	},
	{
		keywords: []string{"aggressive", "boost"},
		effect:   "Scores would be adjusted upward for matching segments",
	},
	{
		keywords: []string{"recency", "recent"},
		effect:   "Recent activity would be weighted more heavily than historical data",
	},
	{
		keywords: []string{"confidence"},
		effect:   "Results would be gated on the model's confidence threshold",
	},
	{
		keywords: []string{"exclude", "ignore"},
		effect:   "Matching candidates would be removed from the result set",
	},
}

const previewFallback = "Custom rules will be applied on top of the standard scoring model"

// Preview estimates what a draft rule would do, as a list of advisory
// lines. It is a simulation in name only: a fixed keyword scan over the
// draft text, computed locally, with no calls to the scoring engine and
// no claim of accuracy. The engine that actually consumes rules may do
// something entirely different.
func Preview(draft string) []string {
	lower := strings.ToLower(draft)

	var effects []string
	for _, p := range previewPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				effects = append(effects, p.effect)
				break
			}
		}
	}

	if len(effects) == 0 {
		return []string{previewFallback}
	}
	return effects
}
