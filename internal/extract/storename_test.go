package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight/shopsight/internal/htmldoc"
)

func parseDoc(t *testing.T, html string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.Parse([]byte(html))
	require.NoError(t, err)
	return doc
}

func TestStoreName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "logo alt text wins",
			html: `<html><head><title>Glow Co - Candles</title></head><body><div class="logo"><img src="/logo.png" alt="Glow Co"></div></body></html>`,
			want: "Glow Co",
		},
		{
			name: "site title element",
			html: `<html><body><h1 class="site-title">Ember Goods</h1></body></html>`,
			want: "Ember Goods",
		},
		{
			name: "title tag truncated at separator",
			html: `<html><head><title>Ember Goods - Hand-poured candles - Shop</title></head><body></body></html>`,
			want: "Ember Goods",
		},
		{
			name: "nothing found",
			html: `<html><body><p>hi</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StoreName(parseDoc(t, tt.html)))
		})
	}
}
