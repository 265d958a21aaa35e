package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/folio/internal/voice"
)

func TestParseEspeakVoices(t *testing.T) {
	out := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-us           --/M      English_(America)  gmw/en-US            (en 10)
 5  vi              --/F      Vietnamese         aav/vi
`
	voices := ParseEspeakVoices(out)
	require.Len(t, voices, 3)
	assert.Equal(t, voice.Voice{ID: "en-us", Name: "English_(America) (male)", Lang: "en-us"}, voices[1])
	assert.Equal(t, "Vietnamese (female)", voices[2].Name)

	v, ok := voice.Fallback(voices, "en")
	require.True(t, ok)
	assert.Equal(t, "en-us", v.ID)
}

func TestParseSayVoices(t *testing.T) {
	out := `Alex                en_US    # Most people recognize me by my voice.
Bad News            en_US    # The light you see at the end of the tunnel is the headlamp of a fast approaching train.
Linh                vi_VN    # Xin chào, tên tôi là Linh.
not a voice line
`
	voices := ParseSayVoices(out)
	require.Len(t, voices, 3)
	assert.Equal(t, voice.Voice{ID: "Bad News", Name: "Bad News", Lang: "en-US"}, voices[1])
	assert.Equal(t, "vi-VN", voices[2].Lang)
}

func TestCommandArgs(t *testing.T) {
	espeak := NewCommandSynthesizer("espeak-ng")
	assert.Equal(t, []string{"-v", "vi"}, espeak.args(Utterance{Lang: "vi-VN"}))
	assert.Equal(t, []string{"-v", "en-us"}, espeak.args(Utterance{Voice: voice.Voice{ID: "en-us"}, Lang: "en-US"}))
	assert.Nil(t, espeak.args(Utterance{}))

	say := NewCommandSynthesizer("/usr/bin/say")
	assert.Equal(t, []string{"-v", "Linh"}, say.args(Utterance{Voice: voice.Voice{ID: "Linh", Name: "Linh"}}))
	assert.Nil(t, say.args(Utterance{Lang: "vi-VN"}))
}

func TestCommandSynthesizerMissingEngine(t *testing.T) {
	s := NewCommandSynthesizer("definitely-not-a-real-tts-engine")
	assert.Error(t, s.Speak(Utterance{Text: "hello"}))
	assert.False(t, s.Speaking())
	assert.Empty(t, s.Voices())
}
