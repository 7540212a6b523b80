package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: "tr"},
		{name: "english", header: "en-US,en;q=0.9", want: "en"},
		{name: "turkish", header: "tr-TR", want: "tr"},
		{name: "quality order", header: "tr;q=0.4, en;q=0.8", want: "en"},
		{name: "unsupported", header: "de-DE", want: "tr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header, Turkish).String())
		})
	}
}

func TestMatch_UsesFallback(t *testing.T) {
	assert.Equal(t, English, Match("", English))
}

func TestParse(t *testing.T) {
	assert.Equal(t, English, Parse("en"))
	assert.Equal(t, Turkish, Parse("tr"))
	assert.Equal(t, Turkish, Parse("not a tag!"))
}

func TestText(t *testing.T) {
	assert.Equal(t, "Belirtilen ID'li gönderi bulunamadı", Text(Turkish, PostNotFound))
	assert.Equal(t, "The post could not be removed", Text(English, PostDeleteFailed))
}

func TestText_EveryKeyTranslated(t *testing.T) {
	for key, translations := range messages {
		for _, tag := range Supported {
			assert.NotEmpty(t, translations[tag], "missing %s translation for %s", tag, key)
			assert.Equal(t, translations[tag], Text(tag, key))
		}
	}
}
