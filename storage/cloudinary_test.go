package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712345/feedboard/images/abc-123.png": "feedboard/images/abc-123",
		"https://res.cloudinary.com/demo/image/upload/feedboard/images/abc-123.jpg":          "feedboard/images/abc-123",
		"images/local-file.png": "",
	}
	for url, want := range cases {
		assert.Equal(t, want, publicIDFromURL(url), url)
	}
}
