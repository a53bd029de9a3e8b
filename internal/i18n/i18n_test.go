package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	b, err := New([]string{"en", "es"})
	require.NoError(t, err)

	cases := []struct {
		name, header, override, want string
	}{
		{"empty header", "", "", "en"},
		{"spanish", "es-ES,es;q=0.9", "", "es"},
		{"regional english", "en-GB", "", "en"},
		{"quality order", "fr;q=0.9,es;q=0.8,en;q=0.1", "", "es"},
		{"unsupported only", "ja", "", "en"},
		{"override wins", "es", "en", "en"},
		{"unsupported override ignored", "es", "de", "es"},
		{"malformed header", ";;;", "", "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Negotiate(tc.header, tc.override))
		})
	}
}

func TestT(t *testing.T) {
	b, err := New([]string{"en", "es"})
	require.NoError(t, err)

	assert.Equal(t, "Explorar", b.T("es", "Explore"))
	assert.Equal(t, "Explore", b.T("en", "Explore"))
	assert.Equal(t, "¡Hola, john!", b.T("es", "Hi, {0}!", "john"))
	assert.Equal(t, "Hi, john!", b.T("en", "Hi, {0}!", "john"))
	assert.Equal(t, "no such key", b.T("es", "no such key"))
	assert.Equal(t, "Explore", b.T("xx", "Explore"), "неизвестная локаль падает на язык по умолчанию")
}

func TestNew_UnsupportedLanguage(t *testing.T) {
	_, err := New([]string{"en", "klingon"})
	assert.Error(t, err)

	_, err = New(nil)
	assert.Error(t, err)
}
