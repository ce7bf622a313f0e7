// Package dialogue implements the live voice interview channel: the
// upstream bidirectional stream client, the transcript accumulator that
// folds completed turns into the session's raw experience buffer, and the
// playback scheduler for inbound audio chunks.
package dialogue

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Accumulator buffers incremental transcript fragments until a
// turn-complete signal, then emits at most one utterance per role (user
// before AI) and one formatted block for the raw experience buffer. A
// fragment is never emitted twice; a turn-complete with nothing pending
// emits nothing.
type Accumulator struct {
	user strings.Builder
	ai   strings.Builder
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// UserFragment appends a partial user transcript fragment.
func (a *Accumulator) UserFragment(text string) {
	a.user.WriteString(text)
}

// ModelFragment appends a partial AI transcript fragment.
func (a *Accumulator) ModelFragment(text string) {
	a.ai.WriteString(text)
}

// TurnComplete closes the current turn. If either pending buffer is
// non-empty it returns the ordered utterances, the block to fold into the
// raw experience buffer, and true; both buffers are cleared either way.
func (a *Accumulator) TurnComplete() ([]types.Utterance, string, bool) {
	user := a.user.String()
	ai := a.ai.String()
	a.user.Reset()
	a.ai.Reset()

	if user == "" && ai == "" {
		return nil, "", false
	}

	var utterances []types.Utterance
	if user != "" {
		utterances = append(utterances, types.Utterance{Role: types.RoleUser, Text: user})
	}
	if ai != "" {
		utterances = append(utterances, types.Utterance{Role: types.RoleAI, Text: ai})
	}

	block := fmt.Sprintf("\nUser: %s\nAI: %s", user, ai)
	return utterances, block, true
}
