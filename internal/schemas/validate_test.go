package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDnaProfile(t *testing.T) {
	valid := `{
		"traits": ["direct", "pragmatic"],
		"sections": [{"title": "Leadership", "items": ["Led a team of six"]}]
	}`
	assert.NoError(t, Validate(DnaProfile, []byte(valid)))

	missingSections := `{"traits": []}`
	var ve *ValidationError
	err := Validate(DnaProfile, []byte(missingSections))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, DnaProfile, ve.Schema)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "sections")
}

func TestValidateFitResult(t *testing.T) {
	valid := `{
		"score": 72,
		"comparisonTable": [{"requirement": "Go", "evidence": "5 years", "match": "high"}],
		"whyMatch": ["deep backend experience"],
		"gaps": ["no fintech background"],
		"conclusion": "Go for it"
	}`
	assert.NoError(t, Validate(FitResult, []byte(valid)))

	tests := []struct {
		name string
		doc  string
	}{
		{"score above bound", `{"score": 140, "comparisonTable": [], "whyMatch": [], "gaps": [], "conclusion": "Go for it"}`},
		{"unknown match level", `{"score": 50, "comparisonTable": [{"requirement": "r", "evidence": "e", "match": "great"}], "whyMatch": [], "gaps": [], "conclusion": "Go for it"}`},
		{"unknown conclusion", `{"score": 50, "comparisonTable": [], "whyMatch": [], "gaps": [], "conclusion": "maybe"}`},
		{"extra field", `{"score": 50, "comparisonTable": [], "whyMatch": [], "gaps": [], "conclusion": "Go for it", "notes": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *ValidationError
			assert.ErrorAs(t, Validate(FitResult, []byte(tt.doc)), &ve)
		})
	}
}

func TestValidateDraft(t *testing.T) {
	valid := `{
		"resume": {"content": "# Jane Doe"},
		"diagnosis": {"reasons": [{
			"title": "Weak summary",
			"description": "The opening does not name the target role.",
			"action": "Lead with the role and years of experience.",
			"severity": "major"
		}]}
	}`
	assert.NoError(t, Validate(Draft, []byte(valid)))

	var ve *ValidationError
	emptyContent := `{"resume": {"content": ""}, "diagnosis": {"reasons": []}}`
	assert.ErrorAs(t, Validate(Draft, []byte(emptyContent)), &ve)

	badSeverity := `{"resume": {"content": "x"}, "diagnosis": {"reasons": [{
		"title": "t", "description": "d", "action": "a", "severity": "cosmetic"
	}]}}`
	assert.ErrorAs(t, Validate(Draft, []byte(badSeverity)), &ve)
}

func TestValidateRejectsMalformedJSONAndUnknownSchema(t *testing.T) {
	assert.Error(t, Validate(DnaProfile, []byte(`{"traits": [`)))

	err := Validate("missing.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}
