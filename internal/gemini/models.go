package gemini

import "strings"

// Gemini Model IDs
//
// | Model Name             | API Model ID          | Use Case                      |
// |------------------------|-----------------------|-------------------------------|
// | Gemini 2.5 Pro         | gemini-2.5-pro        | Stable, high-reasoning tasks  |
// | Gemini 2.5 Flash       | gemini-2.5-flash      | Stable, balanced performance  |
// | Gemini 2.5 Flash-Lite  | gemini-2.5-flash-lite | High-throughput, lowest cost  |
// | Gemini 2.0 Flash       | gemini-2.0-flash      | Previous generation, fast     |
const (
	// ModelGemini25Pro is stable, for high-reasoning tasks.
	ModelGemini25Pro = "gemini-2.5-pro"

	// ModelGemini25Flash is stable, balanced performance.
	ModelGemini25Flash = "gemini-2.5-flash"

	// ModelGemini25FlashLite is for high-throughput, lowest cost.
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"

	// ModelGemini20Flash is the previous generation flash model.
	ModelGemini20Flash = "gemini-2.0-flash"
)

// DefaultModelName is the default Gemini model for video analysis.
const DefaultModelName = ModelGemini25Flash

// modelAliases maps friendly display names to API model IDs.
var modelAliases = map[string]string{
	"gemini 2.5 pro":        ModelGemini25Pro,
	"gemini 2.5 flash":      ModelGemini25Flash,
	"gemini 2.5 flash-lite": ModelGemini25FlashLite,
	"gemini 2.0 flash":      ModelGemini20Flash,
}

// ResolveModel maps a friendly model name like "Gemini 2.5 Flash" to its API
// model ID. An empty name resolves to the default; unrecognized names pass
// through unchanged so newly released models work without a code change.
func ResolveModel(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultModelName
	}
	if id, ok := modelAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	return name
}
