package dialogue

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jonathan/resume-aligner/internal/prompts"
	"github.com/jonathan/resume-aligner/internal/types"
)

// liveEndpoint is the bidirectional generate-content WebSocket endpoint.
const liveEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// DefaultLiveModel is the native-audio dialogue model.
const DefaultLiveModel = "gemini-2.5-flash-native-audio-preview-12-2025"

// defaultVoice is the prebuilt voice used for interviewer audio.
const defaultVoice = "Kore"

// LiveConfig parametrizes one interview stream.
type LiveConfig struct {
	APIKey   string
	Model    string
	Language types.Language
}

// LiveSession is one open upstream dialogue stream. Reads and writes may
// run from different goroutines; writes are serialized internally.
type LiveSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// Connect opens the upstream stream and sends the setup frame: audio-only
// responses, input and output transcription enabled, and the interviewer
// persona in the session language.
func Connect(ctx context.Context, cfg LiveConfig) (*LiveSession, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("dialogue: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultLiveModel
	}

	endpoint := liveEndpoint + "?key=" + url.QueryEscape(cfg.APIKey)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dialogue: failed to connect: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	instruction := prompts.Format(prompts.MustGet("system.json", "interviewer"), map[string]string{
		"Language": cfg.Language.Directive(),
	})

	setup := clientFrame{Setup: &setupFrame{
		Model: "models/" + model,
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: &voiceConfig{
					PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: defaultVoice},
				},
			},
		},
		SystemInstruction:        &content{Parts: []part{{Text: instruction}}},
		InputAudioTranscription:  &struct{}{},
		OutputAudioTranscription: &struct{}{},
	}}

	s := &LiveSession{conn: conn}
	if err := s.write(&setup); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("dialogue: failed to send setup: %w", err)
	}
	return s, nil
}

// SendAudio forwards one base64-encoded PCM chunk (16 kHz mono s16le)
// upstream.
func (s *LiveSession) SendAudio(b64 string) error {
	return s.write(&clientFrame{RealtimeInput: &realtimeInput{
		MediaChunks: []inlineData{{MimeType: InputMimeType, Data: b64}},
	}})
}

// ReadEvents blocks for the next inbound frame and returns its decoded
// events. Frames carrying only acknowledgements decode to an empty slice.
// The error is non-nil once the stream is closed or broken.
func (s *LiveSession) ReadEvents() ([]Event, error) {
	var frame serverFrame
	if err := s.conn.ReadJSON(&frame); err != nil {
		return nil, fmt.Errorf("dialogue: stream read failed: %w", err)
	}
	return decodeServerFrame(&frame), nil
}

// Close terminates the upstream stream. Partial-turn data in flight is
// not salvaged. Safe to call more than once.
func (s *LiveSession) Close() error {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *LiveSession) write(frame *clientFrame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(frame)
}
