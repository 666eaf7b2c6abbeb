package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    Key
		want   string
	}{
		{"ru", "ru", LoadOrders, "Не удалось загрузить заказы"},
		{"en", "en", LoadOrders, "Failed to load orders"},
		{"case and spaces", " EN ", SignIn, "Sign-in failed"},
		{"unknown locale", "de", Forbidden, "Недостаточно прав"},
		{"unknown key", "en", Key("nope"), "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.locale, tt.key))
		})
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalog[DefaultLocale] {
		for locale, table := range catalog {
			assert.NotEmpty(t, table[key], "locale %s misses %s", locale, key)
		}
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("ru"))
	assert.True(t, Supported("En"))
	assert.False(t, Supported("fr"))
}
