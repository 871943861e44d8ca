package deepgram

type Voice string

const (
	VoiceOrion     Voice = "aura-2-orion-en"
	VoiceThalia    Voice = "aura-2-thalia-en"
	VoiceAndromeda Voice = "aura-2-andromeda-en"
	VoiceHelena    Voice = "aura-2-helena-en"
	VoiceApollo    Voice = "aura-2-apollo-en"
	VoiceArcas     Voice = "aura-2-arcas-en"
	VoiceAries     Voice = "aura-2-aries-en"
	VoiceLuna      Voice = "aura-2-luna-en"
	VoiceAsteria   Voice = "aura-asteria-en"
	VoiceAngus     Voice = "aura-angus-en"

	defaultVoice = VoiceOrion
)

func GetAvailableVoices() []Voice {
	return []Voice{
		VoiceOrion,
		VoiceThalia,
		VoiceAndromeda,
		VoiceHelena,
		VoiceApollo,
		VoiceArcas,
		VoiceAries,
		VoiceLuna,
		VoiceAsteria,
		VoiceAngus,
	}
}
