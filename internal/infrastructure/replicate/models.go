package replicate

// predictionRequest is the create-prediction payload. Version is set only for
// version-pinned models; the official-model endpoint takes the bare input.
type predictionRequest struct {
	Version string         `json:"version,omitempty"`
	Input   map[string]any `json:"input"`
}

type predictionURLs struct {
	Get    string `json:"get"`
	Cancel string `json:"cancel"`
}

// Prediction mirrors the provider's prediction resource. Output and Error are
// left untyped because their shape varies per model.
type Prediction struct {
	ID     string         `json:"id"`
	Model  string         `json:"model"`
	Status string         `json:"status"`
	Input  map[string]any `json:"input"`
	Output any            `json:"output"`
	Error  any            `json:"error"`
	URLs   predictionURLs `json:"urls"`
}

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
	statusCanceled  = "canceled"
)

// terminal reports whether the prediction has reached a final status.
func (p *Prediction) terminal() bool {
	switch p.Status {
	case statusSucceeded, statusFailed, statusCanceled:
		return true
	}
	return false
}
