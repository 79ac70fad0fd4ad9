package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview_KnownKeywords(t *testing.T) {
	tests := []struct {
		name  string
		draft string
		want  string
	}{
		{"conservative", "Apply conservative scoring", "Scores would be adjusted downward for uncertain matches"},
		{"aggressive", "Be AGGRESSIVE with new segments", "Scores would be adjusted upward for matching segments"},
		{"boost", "boost repeat purchasers", "Scores would be adjusted upward for matching segments"},
		{"recency", "apply recency weighting", "Recent activity would be weighted more heavily than historical data"},
		{"confidence", "only when confidence is high", "Results would be gated on the model's confidence threshold"},
		{"exclude", "exclude churned accounts", "Matching candidates would be removed from the result set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Preview(tt.draft), tt.want)
		})
	}
}

func TestPreview_MultipleKeywordsOneLineEach(t *testing.T) {
	lines := Preview("Apply conservative scoring and boost recent activity")
	assert.Len(t, lines, 3)
}

func TestPreview_FallbackOnNoMatch(t *testing.T) {
	lines := Preview("prefer customers from the northeast region")
	assert.Equal(t, []string{previewFallback}, lines)
}

func TestPreview_EmptyDraftFallsBack(t *testing.T) {
	assert.Equal(t, []string{previewFallback}, Preview(""))
}

func TestPreview_Deterministic(t *testing.T) {
	const draft = "Apply conservative scoring when confidence < 80%"
	first := Preview(draft)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Preview(draft))
	}
}
