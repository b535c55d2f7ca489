package requests

import (
	"customgpt-actions/internal/domain/media"
)

// GenerateImageRequest is the image generation payload.
type GenerateImageRequest struct {
	Prompt         string `json:"prompt" binding:"required" example:"a watercolor fox in a snowy forest"`
	Model          string `json:"model" example:"flux-schnell"`
	NegativePrompt string `json:"negative_prompt" example:"blurry, low quality"`
	AspectRatio    string `json:"aspect_ratio" example:"16:9"`
}

func (r GenerateImageRequest) ToParams() media.ImageParams {
	return media.ImageParams{
		Prompt:         r.Prompt,
		Model:          r.Model,
		NegativePrompt: r.NegativePrompt,
		AspectRatio:    r.AspectRatio,
	}
}

// Generate3DRequest is the image-to-3D payload. Seed and RemoveBackground are
// pointers so that omitted fields fall back to server defaults instead of the
// zero value.
type Generate3DRequest struct {
	ImageURL         string `json:"image_url" binding:"required" example:"https://example.com/chair.png"`
	Model            string `json:"model" example:"trellis"`
	Seed             *int   `json:"seed" example:"1234"`
	RemoveBackground *bool  `json:"remove_background" example:"true"`
}

func (r Generate3DRequest) ToParams() media.ThreeDParams {
	return media.ThreeDParams{
		ImageURL:         r.ImageURL,
		Model:            r.Model,
		Seed:             r.Seed,
		RemoveBackground: r.RemoveBackground,
	}
}

// GenerateVideoRequest is the video generation payload. ImageURL is required
// only for the image-to-video models.
type GenerateVideoRequest struct {
	Prompt      string `json:"prompt" binding:"required" example:"a paper boat drifting down a rainy street"`
	Model       string `json:"model" example:"wan-t2v-480p"`
	ImageURL    string `json:"image_url" example:"https://example.com/frame.png"`
	AspectRatio string `json:"aspect_ratio" example:"16:9"`
	Seed        *int   `json:"seed" example:"1234"`
	Duration    int    `json:"duration" example:"5"`
}

func (r GenerateVideoRequest) ToParams() media.VideoParams {
	return media.VideoParams{
		Prompt:      r.Prompt,
		Model:       r.Model,
		ImageURL:    r.ImageURL,
		AspectRatio: r.AspectRatio,
		Seed:        r.Seed,
		Duration:    r.Duration,
	}
}

// GenerateAudioRequest is the music generation payload.
type GenerateAudioRequest struct {
	Prompt   string `json:"prompt" binding:"required" example:"lofi hip hop with vinyl crackle"`
	Duration int    `json:"duration" example:"8"`
}

func (r GenerateAudioRequest) ToParams() media.AudioParams {
	return media.AudioParams{
		Prompt:   r.Prompt,
		Duration: r.Duration,
	}
}
