package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuidelinePointID(t *testing.T) {
	t.Run("same guideline always maps to the same point", func(t *testing.T) {
		first := guidelinePointID("resume_guidelines_chunk_0")
		second := guidelinePointID("resume_guidelines_chunk_0")
		assert.Equal(t, first, second)
	})

	t.Run("different guidelines map to different points", func(t *testing.T) {
		assert.NotEqual(t,
			guidelinePointID("resume_guidelines_chunk_0"),
			guidelinePointID("resume_guidelines_chunk_1"),
		)
	})

	t.Run("point ID is a valid UUID string", func(t *testing.T) {
		assert.Regexp(t,
			`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
			guidelinePointID("academic_rules_chunk_3"),
		)
	})
}
