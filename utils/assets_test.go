package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned url",
			url:  "https://res.cloudinary.com/demo/image/upload/v1699999999/products/ashwagandha.jpg",
			want: "products/ashwagandha",
		},
		{
			name: "unversioned url",
			url:  "https://res.cloudinary.com/demo/image/upload/products/ashwagandha.png",
			want: "products/ashwagandha",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v123/banners/summer",
			want: "banners/summer",
		},
		{
			name: "folder starting with v but not a version",
			url:  "https://res.cloudinary.com/demo/image/upload/videos/intro.mp4",
			want: "videos/intro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PublicIDFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPublicIDFromURLRejectsUnrecognized(t *testing.T) {
	for _, url := range []string{
		"",
		"https://example.com/image.jpg",
		"https://res.cloudinary.com/demo/image/upload/",
	} {
		_, err := PublicIDFromURL(url)
		assert.Error(t, err, url)
	}
}
