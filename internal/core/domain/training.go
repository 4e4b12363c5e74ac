package domain

import (
	"fmt"
	"strings"
)

// TrainingExample is one labeled utterance from the training corpus.
type TrainingExample struct {
	Text   string
	Intent Intent
}

// LabelMetrics holds held-out precision/recall/F1 for one intent label.
// Zero-division cases (no predictions or no support) report 0.
type LabelMetrics struct {
	Label     Intent  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// EvaluationReport summarizes a training run over the fixed label set.
type EvaluationReport struct {
	Labels    []LabelMetrics `json:"labels"`
	Accuracy  float64        `json:"accuracy"`
	TrainSize int            `json:"train_size"`
	TestSize  int            `json:"test_size"`
}

func (r EvaluationReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "train=%d test=%d accuracy=%.3f\n", r.TrainSize, r.TestSize, r.Accuracy)
	for _, m := range r.Labels {
		fmt.Fprintf(&b, "%-24s p=%.3f r=%.3f f1=%.3f support=%d\n",
			m.Label, m.Precision, m.Recall, m.F1, m.Support)
	}
	return b.String()
}
