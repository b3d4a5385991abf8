package models

import (
	"time"

	"github.com/goccy/go-json"
)

// ModelDescriptor binds a user to a supported algorithm adapter. It is the
// document the ML shell reads to know what to train; it replaces generated
// wrapper source files.
type ModelDescriptor struct {
	UserID  int64           `json:"user_id"`
	Package string          `json:"package"`
	Class   string          `json:"class"`
	Adapter string          `json:"adapter"`
	Params  json.RawMessage `json:"params,omitempty"`
	Parser  ParserConfig    `json:"parser"`
	Debug   bool            `json:"debug"`
}

// Quality is the metric set reported by the ML shell after testing a model.
type Quality map[string]float64

// TrainReport summarises one successful retrain.
type TrainReport struct {
	UserID    int64         `json:"user_id"`
	ModelPath string        `json:"model_path"`
	Quality   Quality       `json:"quality"`
	Duration  time.Duration `json:"duration"`
}
