package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"customgpt-actions/internal/config"
	"customgpt-actions/internal/infrastructure/metrics"
	"customgpt-actions/internal/infrastructure/observability"
	"customgpt-actions/internal/utils/platformerrors"
	"customgpt-actions/utils/mediaid"
)

// Sampling parameters the wan models expect; callers never set these.
var wanDefaultParams = map[string]any{
	"fast_mode":          "Balanced",
	"num_frames":         81,
	"sample_steps":       30,
	"frames_per_second":  16,
	"sample_guide_scale": 5.0,
}

var fileTypesByKind = map[Kind]struct {
	allowed  []string
	fallback string
}{
	KindImage:  {[]string{"png", "jpg", "webp", "gif"}, "jpg"},
	KindThreeD: {[]string{"glb", "obj", "fbx", "usdz", "stl"}, "glb"},
	KindVideo:  {[]string{"mp4", "webm", "mov"}, "mp4"},
	KindAudio:  {[]string{"mp3", "wav", "ogg", "flac"}, "mp3"},
}

// Service orchestrates media generation through the provider.
type Service struct {
	defaults config.Defaults
	provider Provider
	timeout  time.Duration
	log      zerolog.Logger
}

func NewService(cfg *config.Config, provider Provider, log zerolog.Logger) *Service {
	return &Service{
		defaults: cfg.GenerationDefaults(),
		provider: provider,
		timeout:  cfg.ProviderTimeout,
		log:      log.With().Str("component", "media-service").Logger(),
	}
}

// GenerateImage produces an image from a text prompt.
func (s *Service) GenerateImage(ctx context.Context, p ImageParams) (*Result, error) {
	if strings.TrimSpace(p.Prompt) == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"prompt is required",
			nil,
			"3f1b6d8a-92c4-4e0b-8a5d-7c2e9f4a1b6d",
		)
	}

	modelName := strings.ToLower(strings.TrimSpace(p.Model))
	if modelName == "" {
		modelName = s.defaults.ImageModel
	}
	ref, ok := LookupModel(KindImage, modelName)
	if !ok {
		return nil, s.unknownModelError(ctx, KindImage, modelName)
	}

	aspectRatio := strings.TrimSpace(p.AspectRatio)
	if aspectRatio == "" {
		aspectRatio = s.defaults.AspectRatio
	}

	input := map[string]any{
		"prompt":        p.Prompt,
		"aspect_ratio":  aspectRatio,
		"output_format": "jpg",
	}
	if p.NegativePrompt != "" {
		input["negative_prompt"] = p.NegativePrompt
	}
	if modelName == "imagen-3-fast" {
		input["scale"] = 7.5
		input["steps"] = 30
	}

	asset, err := s.invoke(ctx, KindImage, modelName, ref, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	fileType := inferFileType(asset, KindImage)

	return &Result{
		URL:                  asset.URL,
		ImageURL:             asset.URL,
		PreviewURL:           asset.URL,
		DirectURL:            asset.URL,
		CreatedAt:            now,
		ID:                   mediaid.New(KindImage.IDPrefix()),
		MediaType:            KindImage,
		Prompt:               p.Prompt,
		Model:                modelName,
		FileType:             fileType,
		Description:          fmt.Sprintf("AI-generated image created from prompt: '%s'", p.Prompt),
		DownloadInstructions: "Right-click the image and select 'Save Image As...' to download",
		Metadata: map[string]any{
			"negative_prompt": p.NegativePrompt,
			"aspect_ratio":    aspectRatio,
			"generation_time": now,
		},
	}, nil
}

// GenerateThreeD produces a 3D model from a source image URL.
func (s *Service) GenerateThreeD(ctx context.Context, p ThreeDParams) (*Result, error) {
	if err := validateSourceURL(ctx, p.ImageURL); err != nil {
		return nil, err
	}

	modelName := strings.ToLower(strings.TrimSpace(p.Model))
	if modelName == "" {
		modelName = s.defaults.ThreeDModel
	}
	ref, ok := LookupModel(KindThreeD, modelName)
	if !ok {
		return nil, s.unknownModelError(ctx, KindThreeD, modelName)
	}

	seed := s.defaults.Seed
	if p.Seed != nil {
		seed = *p.Seed
	}
	removeBackground := s.defaults.RemoveBackground
	if p.RemoveBackground != nil {
		removeBackground = *p.RemoveBackground
	}

	var input map[string]any
	switch modelName {
	case "hunyuan3d":
		input = map[string]any{
			"seed":              seed,
			"image":             p.ImageURL,
			"steps":             50,
			"guidance_scale":    5.5,
			"octree_resolution": 256,
			"remove_background": removeBackground,
		}
	default: // trellis
		input = map[string]any{
			"seed":                   seed,
			"images":                 []string{p.ImageURL},
			"texture_size":           1024,
			"mesh_simplify":          0.9,
			"generate_color":         true,
			"generate_model":         true,
			"generate_normal":        true,
			"randomize_seed":         false,
			"save_gaussian_ply":      false,
			"ss_sampling_steps":      38,
			"slat_sampling_steps":    12,
			"return_no_background":   removeBackground,
			"ss_guidance_strength":   7.5,
			"slat_guidance_strength": 3,
		}
	}

	asset, err := s.invoke(ctx, KindThreeD, modelName, ref, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	fileType := inferFileType(asset, KindThreeD)

	return &Result{
		URL:                  asset.URL,
		ModelURL:             asset.URL,
		DownloadURL:          asset.URL,
		DirectURL:            asset.URL,
		CreatedAt:            now,
		ID:                   mediaid.New(KindThreeD.IDPrefix()),
		MediaType:            KindThreeD,
		Model:                modelName,
		FileType:             fileType,
		Description:          fmt.Sprintf("3D model generated from image using %s", modelName),
		DownloadInstructions: fmt.Sprintf("Click to download the %s 3D model file", strings.ToUpper(fileType)),
		Metadata: map[string]any{
			"source_image":      p.ImageURL,
			"seed":              seed,
			"remove_background": removeBackground,
			"generation_time":   now,
		},
	}, nil
}

// GenerateVideo produces a video from a prompt, optionally animating a source
// image for the image-to-video models.
func (s *Service) GenerateVideo(ctx context.Context, p VideoParams) (*Result, error) {
	if strings.TrimSpace(p.Prompt) == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"prompt is required",
			nil,
			"8c4d2e1f-6a7b-4c5d-9e8f-0a1b2c3d4e5f",
		)
	}

	modelName := strings.ToLower(strings.TrimSpace(p.Model))
	if modelName == "" {
		modelName = s.defaults.VideoModel
	}
	ref, ok := LookupModel(KindVideo, modelName)
	if !ok {
		return nil, s.unknownModelError(ctx, KindVideo, modelName)
	}

	aspectRatio := strings.TrimSpace(p.AspectRatio)
	if aspectRatio == "" {
		aspectRatio = s.defaults.AspectRatio
	}
	duration := p.Duration
	if duration <= 0 {
		duration = s.defaults.VideoDuration
	}

	imageToVideo := strings.Contains(modelName, "i2v")
	if imageToVideo {
		if err := validateSourceURL(ctx, p.ImageURL); err != nil {
			return nil, err
		}
	}

	var input map[string]any
	switch {
	case modelName == "veo2":
		input = map[string]any{
			"prompt":       p.Prompt,
			"duration":     duration,
			"aspect_ratio": aspectRatio,
		}
	case imageToVideo:
		input = map[string]any{
			"image":  p.ImageURL,
			"prompt": p.Prompt,
		}
		if strings.Contains(modelName, "720p") {
			input["max_area"] = "720x1280"
			input["sample_shift"] = 5
		} else {
			input["max_area"] = "832x480"
			input["sample_shift"] = 3
		}
		for k, v := range wanDefaultParams {
			input[k] = v
		}
	default: // text-to-video wan models
		input = map[string]any{
			"prompt":       p.Prompt,
			"aspect_ratio": aspectRatio,
			"sample_shift": 5,
		}
		for k, v := range wanDefaultParams {
			input[k] = v
		}
	}
	if p.Seed != nil {
		input["seed"] = *p.Seed
	}

	asset, err := s.invoke(ctx, KindVideo, modelName, ref, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	fileType := inferFileType(asset, KindVideo)

	metadata := map[string]any{
		"aspect_ratio":    aspectRatio,
		"generation_time": now,
	}
	if imageToVideo {
		metadata["source_image"] = p.ImageURL
	}
	if p.Seed != nil {
		metadata["seed"] = *p.Seed
	}

	return &Result{
		URL:                  asset.URL,
		VideoURL:             asset.URL,
		DownloadURL:          asset.URL,
		DirectURL:            asset.URL,
		CreatedAt:            now,
		ID:                   mediaid.New(KindVideo.IDPrefix()),
		MediaType:            KindVideo,
		Prompt:               p.Prompt,
		Model:                modelName,
		FileType:             fileType,
		Description:          fmt.Sprintf("AI-generated video created from prompt: '%s'", p.Prompt),
		DownloadInstructions: fmt.Sprintf("Click to download the %s video file", strings.ToUpper(fileType)),
		Metadata:             metadata,
	}, nil
}

// GenerateAudio produces a music clip from a text prompt.
func (s *Service) GenerateAudio(ctx context.Context, p AudioParams) (*Result, error) {
	if strings.TrimSpace(p.Prompt) == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"prompt is required",
			nil,
			"b7e9f2a3-1c4d-4e5f-8a9b-6d7c8e9f0a1b",
		)
	}

	modelName := s.defaults.AudioModel
	ref, ok := LookupModel(KindAudio, modelName)
	if !ok {
		return nil, s.unknownModelError(ctx, KindAudio, modelName)
	}

	duration := p.Duration
	if duration <= 0 {
		duration = s.defaults.AudioDuration
	}

	input := map[string]any{
		"prompt":                   p.Prompt,
		"duration":                 duration,
		"model_version":            "stereo-large",
		"top_k":                    250,
		"top_p":                    0.0,
		"temperature":              1.0,
		"continuation":             false,
		"output_format":            "mp3",
		"continuation_start":       0,
		"multi_band_diffusion":     false,
		"normalization_strategy":   "peak",
		"classifier_free_guidance": 3.0,
	}

	asset, err := s.invoke(ctx, KindAudio, modelName, ref, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	fileType := inferFileType(asset, KindAudio)

	return &Result{
		URL:                  asset.URL,
		AudioURL:             asset.URL,
		DownloadURL:          asset.URL,
		DirectURL:            asset.URL,
		CreatedAt:            now,
		ID:                   mediaid.New(KindAudio.IDPrefix()),
		MediaType:            KindAudio,
		Prompt:               p.Prompt,
		Model:                modelName,
		FileType:             fileType,
		Description:          fmt.Sprintf("AI-generated music created from prompt: '%s'", p.Prompt),
		DownloadInstructions: fmt.Sprintf("Click to download the %s audio file", strings.ToUpper(fileType)),
		Metadata: map[string]any{
			"duration":        duration,
			"generation_time": now,
		},
	}, nil
}

// invoke runs the provider call with its own deadline. The provider bills per
// prediction, so a caller disconnect must not cancel an in-flight call; the
// request context is detached before the timeout is applied.
func (s *Service) invoke(ctx context.Context, kind Kind, modelName string, ref ModelRef, input map[string]any) (Asset, error) {
	ctx, span := observability.StartGenerationSpan(ctx, string(kind), modelName)
	defer span.End()

	start := time.Now()
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	asset, err := s.provider.Generate(callCtx, ref, input)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordGeneration(string(kind), modelName, "error", elapsed)
		observability.RecordError(span, err)
		s.log.Error().Err(err).Str("media_type", string(kind)).Str("model", modelName).Msg("generation failed")
		return Asset{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "generation failed")
	}

	metrics.RecordGeneration(string(kind), modelName, "success", elapsed)
	s.log.Info().
		Str("media_type", string(kind)).
		Str("model", modelName).
		Float64("duration_sec", elapsed).
		Msg("generation succeeded")
	return asset, nil
}

func (s *Service) unknownModelError(ctx context.Context, kind Kind, name string) error {
	return platformerrors.NewErrorWithContext(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeValidation,
		fmt.Sprintf("model must be one of: %s", strings.Join(ModelNames(kind), ", ")),
		nil,
		"5a2c7e9b-4f1d-4a6c-8e3b-9d0f1a2b3c4d",
		map[string]any{"media_type": string(kind), "model": name},
	)
}

func validateSourceURL(ctx context.Context, raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"image_url must be a valid URL starting with http:// or https://",
			err,
			"d1e2f3a4-b5c6-4d7e-8f9a-0b1c2d3e4f5a",
		)
	}
	return nil
}

// inferFileType derives the file type from the asset URL extension, falling
// back to the provider content type and finally the per-kind default.
func inferFileType(asset Asset, kind Kind) string {
	rules := fileTypesByKind[kind]

	if parsed, err := url.Parse(strings.ToLower(asset.URL)); err == nil {
		ext := strings.TrimPrefix(path.Ext(parsed.Path), ".")
		if ext == "jpeg" {
			ext = "jpg"
		}
		for _, allowed := range rules.allowed {
			if ext == allowed {
				return ext
			}
		}
	}

	if ct := strings.TrimSpace(asset.ContentType); ct != "" {
		if m := mimetype.Lookup(ct); m != nil {
			ext := strings.TrimPrefix(m.Extension(), ".")
			if ext == "jpeg" {
				ext = "jpg"
			}
			if ext != "" {
				return ext
			}
		}
	}

	return rules.fallback
}
