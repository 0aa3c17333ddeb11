package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "image with version prefix",
			url:  "https://res.cloudinary.com/demo/image/upload/v1699999999/products/ui-kit_1699999999.png",
			want: "products/ui-kit_1699999999",
		},
		{
			name: "raw file with version prefix",
			url:  "https://res.cloudinary.com/demo/raw/upload/v1699999999/files/bundle_1699999999.zip",
			want: "files/bundle_1699999999",
		},
		{
			name: "no version prefix",
			url:  "https://res.cloudinary.com/demo/image/upload/products/icon-pack.jpg",
			want: "products/icon-pack",
		},
		{
			name: "non-cloudinary url",
			url:  "https://example.com/images/logo.png",
			want: "",
		},
		{
			name: "empty url",
			url:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPublicID(tt.url))
		})
	}
}

func TestForceHTTPS(t *testing.T) {
	assert.Equal(t, "https://res.cloudinary.com/x.png", forceHTTPS("http://res.cloudinary.com/x.png"))
	assert.Equal(t, "https://res.cloudinary.com/x.png", forceHTTPS("https://res.cloudinary.com/x.png"))
	assert.Equal(t, "", forceHTTPS(""))
}
