package events

const (
	// KindUserAudioLevel identifies input loudness updates.
	KindUserAudioLevel Kind = "user_input.audio_level"
	// KindUserUtterance identifies the text a turn acts on.
	KindUserUtterance Kind = "user_input.utterance"
)

// UserAudioLevel carries the loudness of a captured audio frame.
type UserAudioLevel struct {
	Base
	Level float64
}

// NewUserAudioLevel creates a user audio level event.
func NewUserAudioLevel(level float64) UserAudioLevel {
	return UserAudioLevel{Base: NewBase(KindUserAudioLevel), Level: level}
}

// UserUtterance carries captured or typed user input.
type UserUtterance struct {
	Base
	Text    string
	Channel string
}

// NewUserUtterance creates a user utterance event.
func NewUserUtterance(text, channel string) UserUtterance {
	return UserUtterance{Base: NewBase(KindUserUtterance), Text: text, Channel: channel}
}
