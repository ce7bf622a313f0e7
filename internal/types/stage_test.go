package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseStageMapping(t *testing.T) {
	tests := []struct {
		phase Phase
		stage Stage
	}{
		{PhaseDiscoveryCapture, StageDiscovery},
		{PhaseDiscoveryReview, StageDiscovery},
		{PhaseFitCheckInput, StageFitCheck},
		{PhaseFitCheckReview, StageFitCheck},
		{PhaseDiagnosis, StageDiagnosis},
		{PhasePolish, StagePolish},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.True(t, tt.phase.Valid())
			assert.Equal(t, tt.stage, tt.phase.Stage())
		})
	}
}

func TestStageOrdering(t *testing.T) {
	assert.Less(t, StageDiscovery, StageFitCheck)
	assert.Less(t, StageFitCheck, StageDiagnosis)
	assert.Less(t, StageDiagnosis, StagePolish)
}

func TestPhaseJSONUsesWireNames(t *testing.T) {
	raw, err := json.Marshal(struct {
		Phase Phase `json:"phase"`
		Stage Stage `json:"stage"`
	}{PhaseFitCheckReview, StageFitCheck})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase": "fit_check_review", "stage": "fit_check"}`, string(raw))
}

func TestInvalidPhaseDoesNotMarshal(t *testing.T) {
	_, err := Phase(99).MarshalText()
	assert.Error(t, err)
	assert.False(t, Phase(0).Valid())
	assert.False(t, Stage(5).Valid())
}

func TestLanguage(t *testing.T) {
	assert.True(t, LanguageEnglish.Valid())
	assert.True(t, LanguageChinese.Valid())
	assert.False(t, Language("fr").Valid())

	assert.Contains(t, LanguageChinese.Directive(), "Chinese")
	assert.Contains(t, LanguageEnglish.Directive(), "English")
}

func TestFitResultEnums(t *testing.T) {
	assert.True(t, MatchHigh.Valid())
	assert.False(t, MatchLevel("great").Valid())

	assert.True(t, ConclusionGoForIt.Valid())
	assert.True(t, ConclusionStretch.Valid())
	assert.True(t, ConclusionPivot.Valid())
	assert.False(t, Conclusion("maybe").Valid())
}
