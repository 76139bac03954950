package typhoon

import "time"

// Params are the sampling settings sent with every request.
type Params struct {
	Model       string  // e.g. "typhoon-ocr-preview"
	MaxTokens   int     // e.g. 16000
	Temperature float32 // e.g. 0.1
	TopP        float32 // e.g. 0.6
}

func DefaultParams() Params {
	return Params{
		Model:       "typhoon-ocr-preview",
		MaxTokens:   16000,
		Temperature: 0.1,
		TopP:        0.6,
	}
}

type Options struct {
	BaseURL string
	APIKey  string
	Params  Params
	// MaxSide bounds the longer image side sent to the model, in pixels.
	MaxSide int
	Timeout time.Duration
}

// languageNames is used to phrase the prompt; unknown codes are sent as-is.
var languageNames = map[string]string{
	"en":     "English",
	"de":     "German",
	"fr":     "French",
	"es":     "Spanish",
	"it":     "Italian",
	"pt":     "Portuguese",
	"nl":     "Dutch",
	"pl":     "Polish",
	"ru":     "Russian",
	"uk":     "Ukrainian",
	"th":     "Thai",
	"ch":     "Chinese",
	"zh":     "Chinese",
	"japan":  "Japanese",
	"ja":     "Japanese",
	"korean": "Korean",
	"ko":     "Korean",
}
