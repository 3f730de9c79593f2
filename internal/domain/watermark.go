package domain

import "strings"

const (
	watermarkPhrase      = "Transcribed by TurboScribe.ai. Go Unlimited to remove this message"
	watermarkReplacement = "Powered by SayWith"
)

// StripWatermark replaces the transcription-tool watermark with our own
// attribution. The replacement does not contain the phrase, so applying it
// twice yields the same text as applying it once.
func StripWatermark(text string) string {
	return strings.ReplaceAll(text, watermarkPhrase, watermarkReplacement)
}
