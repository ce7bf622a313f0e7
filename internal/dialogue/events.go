package dialogue

// EventKind discriminates the events decoded from the live dialogue
// stream.
type EventKind int

// Event kinds, matching the upstream stream contract.
const (
	EventAudio EventKind = iota + 1
	EventUserTranscript
	EventModelTranscript
	EventTurnComplete
	EventInterrupted
)

// Event is one decoded inbound dialogue event. AudioB64 is set for
// EventAudio (24 kHz mono s16le PCM, base64); Text is set for the two
// transcript kinds.
type Event struct {
	Kind     EventKind
	AudioB64 string
	Text     string
}

// Wire frames for the bidirectional generate-content WebSocket protocol.

type clientFrame struct {
	Setup         *setupFrame    `json:"setup,omitempty"`
	RealtimeInput *realtimeInput `json:"realtimeInput,omitempty"`
}

type setupFrame struct {
	Model                    string            `json:"model"`
	GenerationConfig         *generationConfig `json:"generationConfig,omitempty"`
	SystemInstruction        *content          `json:"systemInstruction,omitempty"`
	InputAudioTranscription  *struct{}         `json:"inputAudioTranscription,omitempty"`
	OutputAudioTranscription *struct{}         `json:"outputAudioTranscription,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig *voiceConfig `json:"voiceConfig,omitempty"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig *prebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type realtimeInput struct {
	MediaChunks []inlineData `json:"mediaChunks"`
}

type serverFrame struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *serverContent `json:"serverContent,omitempty"`
}

type serverContent struct {
	ModelTurn           *content       `json:"modelTurn,omitempty"`
	TurnComplete        bool           `json:"turnComplete,omitempty"`
	Interrupted         bool           `json:"interrupted,omitempty"`
	InputTranscription  *transcription `json:"inputTranscription,omitempty"`
	OutputTranscription *transcription `json:"outputTranscription,omitempty"`
}

type transcription struct {
	Text string `json:"text"`
}

// decodeServerFrame flattens one inbound frame into ordered events.
// Interruption is decoded before turn completion so a flush always
// precedes the turn fold it interrupts.
func decodeServerFrame(f *serverFrame) []Event {
	sc := f.ServerContent
	if sc == nil {
		return nil
	}

	var events []Event
	if sc.ModelTurn != nil {
		for _, p := range sc.ModelTurn.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				events = append(events, Event{Kind: EventAudio, AudioB64: p.InlineData.Data})
			}
		}
	}
	if sc.Interrupted {
		events = append(events, Event{Kind: EventInterrupted})
	}
	if sc.InputTranscription != nil && sc.InputTranscription.Text != "" {
		events = append(events, Event{Kind: EventUserTranscript, Text: sc.InputTranscription.Text})
	}
	if sc.OutputTranscription != nil && sc.OutputTranscription.Text != "" {
		events = append(events, Event{Kind: EventModelTranscript, Text: sc.OutputTranscription.Text})
	}
	if sc.TurnComplete {
		events = append(events, Event{Kind: EventTurnComplete})
	}
	return events
}
