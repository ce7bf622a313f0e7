package dialogue

import "time"

// Audio format constants of the dialogue channel: fixed-size linear PCM,
// 16-bit signed little-endian samples, mono.
const (
	// InputSampleRate is the microphone capture rate sent upstream.
	InputSampleRate = 16000
	// OutputSampleRate is the rate of model audio chunks received.
	OutputSampleRate = 24000

	bytesPerSample = 2
)

// InputMimeType is the media type announced for outbound audio chunks.
const InputMimeType = "audio/pcm;rate=16000"

// PCMDuration returns the playback duration of a raw PCM chunk of the
// given byte length at the given sample rate.
func PCMDuration(byteLen, sampleRate int) time.Duration {
	if byteLen <= 0 || sampleRate <= 0 {
		return 0
	}
	samples := byteLen / bytesPerSample
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
