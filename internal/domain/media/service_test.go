package media_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"customgpt-actions/internal/config"
	"customgpt-actions/internal/domain/media"
	"customgpt-actions/internal/utils/platformerrors"
)

// MockProvider is a mock implementation of media.Provider for testing.
type MockProvider struct {
	GenerateFunc func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error)
	Calls        int
	LastModel    media.ModelRef
	LastInput    map[string]any
}

func (m *MockProvider) Generate(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
	m.Calls++
	m.LastModel = model
	m.LastInput = input
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, model, input)
	}
	return media.Asset{URL: "https://cdn.example.com/out.jpg"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultImageModel:       "flux-schnell",
		DefaultThreeDModel:      "trellis",
		DefaultVideoModel:       "wan-i2v-480p",
		DefaultAudioModel:       "musicgen",
		DefaultAspectRatio:      "16:9",
		DefaultSeed:             1234,
		DefaultRemoveBackground: true,
		DefaultVideoDuration:    5,
		DefaultAudioDuration:    8,
		ProviderTimeout:         time.Second,
	}
}

func newService(provider media.Provider) *media.Service {
	return media.NewService(testConfig(), provider, zerolog.Nop())
}

func TestGenerateImageRequiresPrompt(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	_, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "   "})
	if err == nil {
		t.Fatal("expected validation error for empty prompt")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if provider.Calls != 0 {
		t.Fatalf("provider must not be called on validation failure, got %d calls", provider.Calls)
	}
}

func TestGenerateImageRejectsUnknownModel(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	_, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox", Model: "dall-e"})
	if err == nil {
		t.Fatal("expected validation error for unknown model")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "flux-schnell") || !strings.Contains(err.Error(), "imagen-3-fast") {
		t.Fatalf("error should list valid models, got %q", err.Error())
	}
	if provider.Calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", provider.Calls)
	}
}

func TestGenerateImageDefaultsAndAliases(t *testing.T) {
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			return media.Asset{URL: "https://cdn.example.com/pic.png"}, nil
		},
	}
	svc := newService(provider)

	result, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.LastModel.Path != "black-forest-labs/flux-schnell" {
		t.Fatalf("expected default flux-schnell model, got %q", provider.LastModel.Path)
	}
	if provider.LastInput["aspect_ratio"] != "16:9" {
		t.Fatalf("expected default aspect ratio, got %v", provider.LastInput["aspect_ratio"])
	}
	if _, ok := provider.LastInput["negative_prompt"]; ok {
		t.Fatal("empty negative prompt must be omitted from input")
	}

	for name, alias := range map[string]string{
		"image_url":   result.ImageURL,
		"preview_url": result.PreviewURL,
		"direct_url":  result.DirectURL,
	} {
		if alias != result.URL {
			t.Fatalf("alias %s = %q, want %q", name, alias, result.URL)
		}
	}
	if result.MediaType != media.KindImage {
		t.Fatalf("media_type = %q", result.MediaType)
	}
	if !strings.HasPrefix(result.ID, "img_") {
		t.Fatalf("id should carry img_ prefix, got %q", result.ID)
	}
	if result.FileType != "png" {
		t.Fatalf("file_type = %q, want png", result.FileType)
	}
	if result.Model != "flux-schnell" {
		t.Fatalf("model = %q", result.Model)
	}
}

func TestGenerateImageImagenExtraInput(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	_, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox", Model: "imagen-3-fast"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.LastInput["scale"] != 7.5 {
		t.Fatalf("scale = %v, want 7.5", provider.LastInput["scale"])
	}
	if provider.LastInput["steps"] != 30 {
		t.Fatalf("steps = %v, want 30", provider.LastInput["steps"])
	}
}

func TestGenerateImageFileTypeFallback(t *testing.T) {
	cases := []struct {
		name  string
		asset media.Asset
		want  string
	}{
		{"jpeg normalized", media.Asset{URL: "https://cdn.example.com/a.jpeg"}, "jpg"},
		{"unknown extension", media.Asset{URL: "https://cdn.example.com/a.bin"}, "jpg"},
		{"no extension with content type", media.Asset{URL: "https://cdn.example.com/a", ContentType: "image/webp"}, "webp"},
		{"query string ignored", media.Asset{URL: "https://cdn.example.com/a.png?sig=abc"}, "png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &MockProvider{
				GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
					return tc.asset, nil
				},
			}
			svc := newService(provider)

			result, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.FileType != tc.want {
				t.Fatalf("file_type = %q, want %q", result.FileType, tc.want)
			}
		})
	}
}

func TestGenerateThreeDValidatesImageURL(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	for _, raw := range []string{"", "notaurl", "ftp://example.com/x.png"} {
		_, err := svc.GenerateThreeD(context.Background(), media.ThreeDParams{ImageURL: raw})
		if err == nil {
			t.Fatalf("expected validation error for %q", raw)
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
	if provider.Calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", provider.Calls)
	}
}

func TestGenerateThreeDDefaults(t *testing.T) {
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			return media.Asset{URL: "https://cdn.example.com/mesh.glb"}, nil
		},
	}
	svc := newService(provider)

	result, err := svc.GenerateThreeD(context.Background(), media.ThreeDParams{ImageURL: "https://example.com/chair.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.LastModel.Path != "firtoz/trellis" {
		t.Fatalf("expected trellis default, got %q", provider.LastModel.Path)
	}
	if provider.LastModel.Version == "" {
		t.Fatal("trellis calls must pin the model version")
	}
	if provider.LastInput["seed"] != 1234 {
		t.Fatalf("seed = %v, want default 1234", provider.LastInput["seed"])
	}
	if provider.LastInput["return_no_background"] != true {
		t.Fatalf("return_no_background = %v, want true", provider.LastInput["return_no_background"])
	}
	images, ok := provider.LastInput["images"].([]string)
	if !ok || len(images) != 1 || images[0] != "https://example.com/chair.png" {
		t.Fatalf("images = %v", provider.LastInput["images"])
	}

	for name, alias := range map[string]string{
		"model_url":    result.ModelURL,
		"download_url": result.DownloadURL,
		"direct_url":   result.DirectURL,
	} {
		if alias != result.URL {
			t.Fatalf("alias %s = %q, want %q", name, alias, result.URL)
		}
	}
	if !strings.HasPrefix(result.ID, "3d_") {
		t.Fatalf("id should carry 3d_ prefix, got %q", result.ID)
	}
	if result.FileType != "glb" {
		t.Fatalf("file_type = %q, want glb", result.FileType)
	}
	if result.Metadata["source_image"] != "https://example.com/chair.png" {
		t.Fatalf("metadata source_image = %v", result.Metadata["source_image"])
	}
}

func TestGenerateThreeDHunyuanInput(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	seed := 99
	removeBackground := false
	_, err := svc.GenerateThreeD(context.Background(), media.ThreeDParams{
		ImageURL:         "https://example.com/chair.png",
		Model:            "hunyuan3d",
		Seed:             &seed,
		RemoveBackground: &removeBackground,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.LastModel.Path != "tencent/hunyuan3d-2" {
		t.Fatalf("model path = %q", provider.LastModel.Path)
	}
	if provider.LastInput["seed"] != 99 {
		t.Fatalf("seed = %v, want explicit 99", provider.LastInput["seed"])
	}
	if provider.LastInput["remove_background"] != false {
		t.Fatalf("remove_background = %v, want explicit false", provider.LastInput["remove_background"])
	}
	if provider.LastInput["image"] != "https://example.com/chair.png" {
		t.Fatalf("image = %v", provider.LastInput["image"])
	}
}

func TestGenerateVideoImageToVideoRequiresImageURL(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	_, err := svc.GenerateVideo(context.Background(), media.VideoParams{Prompt: "a boat", Model: "wan-i2v-480p"})
	if err == nil {
		t.Fatal("expected validation error for missing image_url")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if provider.Calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", provider.Calls)
	}
}

func TestGenerateVideoTextToVideo(t *testing.T) {
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			return media.Asset{URL: "https://cdn.example.com/clip.mp4"}, nil
		},
	}
	svc := newService(provider)

	result, err := svc.GenerateVideo(context.Background(), media.VideoParams{Prompt: "a boat", Model: "wan-t2v-480p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.LastInput["prompt"] != "a boat" {
		t.Fatalf("prompt = %v", provider.LastInput["prompt"])
	}
	if provider.LastInput["num_frames"] != 81 {
		t.Fatalf("num_frames = %v, want 81", provider.LastInput["num_frames"])
	}
	if _, ok := provider.LastInput["image"]; ok {
		t.Fatal("text-to-video input must not carry an image")
	}
	if result.VideoURL != result.URL || result.DownloadURL != result.URL || result.DirectURL != result.URL {
		t.Fatal("video aliases must match url")
	}
	if !strings.HasPrefix(result.ID, "vid_") {
		t.Fatalf("id should carry vid_ prefix, got %q", result.ID)
	}
	if result.FileType != "mp4" {
		t.Fatalf("file_type = %q, want mp4", result.FileType)
	}
}

func TestGenerateAudioDefaults(t *testing.T) {
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			return media.Asset{URL: "https://cdn.example.com/track.mp3"}, nil
		},
	}
	svc := newService(provider)

	result, err := svc.GenerateAudio(context.Background(), media.AudioParams{Prompt: "lofi beats"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.LastModel.Path != "meta/musicgen" {
		t.Fatalf("model path = %q", provider.LastModel.Path)
	}
	if provider.LastInput["duration"] != 8 {
		t.Fatalf("duration = %v, want default 8", provider.LastInput["duration"])
	}
	if provider.LastInput["output_format"] != "mp3" {
		t.Fatalf("output_format = %v", provider.LastInput["output_format"])
	}
	if result.AudioURL != result.URL || result.DownloadURL != result.URL || result.DirectURL != result.URL {
		t.Fatal("audio aliases must match url")
	}
	if !strings.HasPrefix(result.ID, "aud_") {
		t.Fatalf("id should carry aud_ prefix, got %q", result.ID)
	}
}

func TestProviderFailureWrapped(t *testing.T) {
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			return media.Asset{}, platformerrors.NewError(
				context.Background(),
				platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal,
				"prediction failed: NSFW content detected",
				nil,
				"00000000-0000-0000-0000-000000000000",
			)
		},
	}
	svc := newService(provider)

	_, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox"})
	if err == nil {
		t.Fatal("expected provider error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("expected external error type, got %v", err)
	}
	if !strings.Contains(err.Error(), "NSFW") {
		t.Fatalf("provider detail should survive wrapping, got %q", err.Error())
	}
}

func TestProviderCallSurvivesCallerCancel(t *testing.T) {
	released := make(chan struct{})
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			select {
			case <-ctx.Done():
				return media.Asset{}, ctx.Err()
			case <-released:
				return media.Asset{URL: "https://cdn.example.com/out.jpg"}, nil
			}
		},
	}
	svc := newService(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(released)
	}()

	result, err := svc.GenerateImage(ctx, media.ImageParams{Prompt: "a fox"})
	if err != nil {
		t.Fatalf("cancelled caller must not abort the provider call: %v", err)
	}
	if result.URL == "" {
		t.Fatal("expected completed result despite caller cancel")
	}
}

func TestTimestampsConsistent(t *testing.T) {
	provider := &MockProvider{}
	svc := newService(provider)

	result, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created, err := time.Parse(time.RFC3339, result.CreatedAt)
	if err != nil {
		t.Fatalf("created_at is not RFC3339: %v", err)
	}
	if time.Since(created) > time.Minute {
		t.Fatalf("created_at too old: %v", created)
	}
	if result.Metadata["generation_time"] != result.CreatedAt {
		t.Fatalf("generation_time %v should equal created_at %v", result.Metadata["generation_time"], result.CreatedAt)
	}
}

func TestNonPlatformProviderErrorBecomesExternal(t *testing.T) {
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
			return media.Asset{}, errors.New("connection reset by peer")
		},
	}
	svc := newService(provider)

	_, err := svc.GenerateImage(context.Background(), media.ImageParams{Prompt: "a fox"})
	if err == nil {
		t.Fatal("expected error")
	}
	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %T", err)
	}
}
