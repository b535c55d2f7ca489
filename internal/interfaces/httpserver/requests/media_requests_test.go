package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"customgpt-actions/internal/domain/media"
)

func TestGenerateImageRequestToParams(t *testing.T) {
	req := GenerateImageRequest{
		Prompt:         "a watercolor fox",
		Model:          "imagen-3-fast",
		NegativePrompt: "blurry",
		AspectRatio:    "1:1",
	}

	params := req.ToParams()
	assert.Equal(t, media.ImageParams{
		Prompt:         "a watercolor fox",
		Model:          "imagen-3-fast",
		NegativePrompt: "blurry",
		AspectRatio:    "1:1",
	}, params)
}

func TestGenerate3DRequestPreservesOptionalFields(t *testing.T) {
	req := Generate3DRequest{ImageURL: "https://example.com/chair.png"}
	params := req.ToParams()
	assert.Nil(t, params.Seed, "absent seed must stay nil so defaults apply")
	assert.Nil(t, params.RemoveBackground, "absent remove_background must stay nil so defaults apply")

	seed := 7
	removeBackground := false
	req = Generate3DRequest{
		ImageURL:         "https://example.com/chair.png",
		Seed:             &seed,
		RemoveBackground: &removeBackground,
	}
	params = req.ToParams()
	if assert.NotNil(t, params.Seed) {
		assert.Equal(t, 7, *params.Seed)
	}
	if assert.NotNil(t, params.RemoveBackground) {
		assert.False(t, *params.RemoveBackground)
	}
}

func TestGenerateVideoRequestToParams(t *testing.T) {
	req := GenerateVideoRequest{Prompt: "a boat", Model: "veo2", Duration: 8}
	params := req.ToParams()
	assert.Equal(t, "a boat", params.Prompt)
	assert.Equal(t, "veo2", params.Model)
	assert.Equal(t, 8, params.Duration)
	assert.Empty(t, params.ImageURL)
}
