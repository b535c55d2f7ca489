package media

import "context"

// Kind identifies the media kind of a generation request.
type Kind string

const (
	KindImage  Kind = "image"
	KindThreeD Kind = "3d_model"
	KindVideo  Kind = "video"
	KindAudio  Kind = "audio"
)

// IDPrefix returns the identifier prefix for the kind.
func (k Kind) IDPrefix() string {
	switch k {
	case KindThreeD:
		return "3d"
	case KindVideo:
		return "vid"
	case KindAudio:
		return "aud"
	default:
		return "img"
	}
}

// ModelRef identifies a provider-side model, optionally pinned to a version.
type ModelRef struct {
	Path    string
	Version string
}

// Asset is the provider's view of a generated artifact.
type Asset struct {
	URL         string
	ContentType string
}

// Provider is the narrow capability interface the service depends on. Tests
// substitute a deterministic stand-in; production wires the Replicate client.
type Provider interface {
	Generate(ctx context.Context, model ModelRef, input map[string]any) (Asset, error)
}

// ImageParams carries a validated-or-not image generation request.
type ImageParams struct {
	Prompt         string
	Model          string
	NegativePrompt string
	AspectRatio    string
}

// ThreeDParams carries an image-to-3D generation request. Seed and
// RemoveBackground are pointers so an absent field can take the configured
// default.
type ThreeDParams struct {
	ImageURL         string
	Model            string
	Seed             *int
	RemoveBackground *bool
}

// VideoParams carries a video generation request. Image-to-video models
// require ImageURL.
type VideoParams struct {
	Prompt      string
	Model       string
	ImageURL    string
	AspectRatio string
	Seed        *int
	Duration    int
}

// AudioParams carries a music generation request.
type AudioParams struct {
	Prompt   string
	Duration int
}

// Result is the normalized generation outcome. The alias URL fields are a
// compatibility contract: the consuming chat client auto-previews media only
// when specific field names are present, and different client versions have
// relied on different names. Every populated alias carries the identical URL.
type Result struct {
	URL                  string         `json:"url"`
	ImageURL             string         `json:"image_url,omitempty"`
	PreviewURL           string         `json:"preview_url,omitempty"`
	ModelURL             string         `json:"model_url,omitempty"`
	VideoURL             string         `json:"video_url,omitempty"`
	AudioURL             string         `json:"audio_url,omitempty"`
	DownloadURL          string         `json:"download_url,omitempty"`
	DirectURL            string         `json:"direct_url,omitempty"`
	CreatedAt            string         `json:"created_at"`
	ID                   string         `json:"id"`
	MediaType            Kind           `json:"media_type"`
	Prompt               string         `json:"prompt,omitempty"`
	Model                string         `json:"model"`
	FileType             string         `json:"file_type,omitempty"`
	Description          string         `json:"description,omitempty"`
	DownloadInstructions string         `json:"download_instructions,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
}
