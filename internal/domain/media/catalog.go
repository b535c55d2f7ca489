package media

import (
	"sort"
	"strings"
)

// Model catalog. Friendly names map to Replicate model paths, pinned to a
// version where the upstream model requires it.
var (
	imageModels = map[string]ModelRef{
		"flux-schnell":  {Path: "black-forest-labs/flux-schnell"},
		"imagen-3-fast": {Path: "google/imagen-3"},
	}

	threeDModels = map[string]ModelRef{
		"trellis": {
			Path:    "firtoz/trellis",
			Version: "4876f2a8da1c544772dffa32e8889da4a1bab3a1f5c1937bfcfccb99ae347251",
		},
		"hunyuan3d": {
			Path:    "tencent/hunyuan3d-2",
			Version: "b1b9449a1277e10402781c5d41eb30c0a0683504fb23fab591ca9dfc2aabe1cb",
		},
	}

	videoModels = map[string]ModelRef{
		"wan-i2v-480p": {Path: "wavespeedai/wan-2.1-i2v-480p"},
		"wan-i2v-720p": {Path: "wavespeedai/wan-2.1-i2v-720p"},
		"wan-t2v-480p": {Path: "wavespeedai/wan-2.1-t2v-480p"},
		"wan-t2v-720p": {Path: "wavespeedai/wan-2.1-t2v-720p"},
		"veo2":         {Path: "google/veo-2"},
	}

	audioModels = map[string]ModelRef{
		"musicgen": {
			Path:    "meta/musicgen",
			Version: "671ac645ce5e552cc63a54a2bbff63fcf798043055d2dac5fc9e36a837eedcfb",
		},
	}
)

func catalogFor(kind Kind) map[string]ModelRef {
	switch kind {
	case KindImage:
		return imageModels
	case KindThreeD:
		return threeDModels
	case KindVideo:
		return videoModels
	case KindAudio:
		return audioModels
	default:
		return nil
	}
}

// LookupModel resolves a friendly model name for the given media kind.
func LookupModel(kind Kind, name string) (ModelRef, bool) {
	ref, ok := catalogFor(kind)[strings.ToLower(strings.TrimSpace(name))]
	return ref, ok
}

// ModelNames lists the friendly model names for a kind, sorted for stable
// error messages.
func ModelNames(kind Kind) []string {
	catalog := catalogFor(kind)
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
