package responses

// MediaResponse documents the generation envelope for swagger. The live
// response is the domain result serialized directly; every populated alias
// URL field carries the same value as "url".
type MediaResponse struct {
	URL                  string         `json:"url" example:"https://replicate.delivery/pbxt/abc/out.jpg"`
	ImageURL             string         `json:"image_url,omitempty"`
	PreviewURL           string         `json:"preview_url,omitempty"`
	ModelURL             string         `json:"model_url,omitempty"`
	VideoURL             string         `json:"video_url,omitempty"`
	AudioURL             string         `json:"audio_url,omitempty"`
	DownloadURL          string         `json:"download_url,omitempty"`
	DirectURL            string         `json:"direct_url,omitempty"`
	CreatedAt            string         `json:"created_at" example:"2025-03-14T09:26:53Z"`
	ID                   string         `json:"id" example:"img_01hqxw2bsg0002v9kzacme79gq"`
	MediaType            string         `json:"media_type" example:"image"`
	Prompt               string         `json:"prompt,omitempty"`
	Model                string         `json:"model" example:"flux-schnell"`
	FileType             string         `json:"file_type,omitempty" example:"jpg"`
	Description          string         `json:"description,omitempty"`
	DownloadInstructions string         `json:"download_instructions,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
}

// ServiceInfo is the root endpoint payload.
type ServiceInfo struct {
	Service             string              `json:"service"`
	Status              string              `json:"status"`
	Version             string              `json:"version"`
	ReplicateConfigured bool                `json:"replicate_configured"`
	Endpoints           map[string]string   `json:"endpoints"`
	Models              map[string][]string `json:"models"`
}
