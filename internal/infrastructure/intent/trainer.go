package intent

import (
	"errors"
	"math/rand"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/textvec"
)

const (
	// Fixed seed keeps the train/test partition and the resulting model
	// reproducible across runs.
	trainSeed = 42
	epochs    = 12
)

// Train fits the vectorizer and a one-vs-rest averaged perceptron on an 80/20
// split of the corpus and evaluates the held-out partition over the fixed
// label set. Labels absent from the corpus keep zero weights; they never win
// Predict but do not fail training.
func Train(corpus []domain.TrainingExample) (*Model, domain.EvaluationReport, error) {
	if len(corpus) == 0 {
		return nil, domain.EvaluationReport{},
			domain.WrapError(domain.ErrDataUnavailable, "train intent model", errors.New("training corpus is empty"))
	}

	shuffled := make([]domain.TrainingExample, len(corpus))
	copy(shuffled, corpus)
	rng := rand.New(rand.NewSource(trainSeed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testSize := len(shuffled) / 5
	test := shuffled[:testSize]
	train := shuffled[testSize:]

	texts := make([]string, len(train))
	for i, ex := range train {
		texts[i] = ex.Text
	}
	vectorizer := textvec.Fit(texts)
	vectors := vectorizer.TransformAll(texts)

	labels := domain.AllIntents()
	model := &Model{
		Vectorizer: vectorizer,
		Labels:     labels,
		Weights:    make([][]float64, len(labels)),
		Bias:       make([]float64, len(labels)),
	}

	dim := len(vectorizer.IDF)
	for li, label := range labels {
		model.Weights[li] = fitBinary(vectors, train, label, dim, &model.Bias[li])
	}

	return model, evaluate(model, test, len(train)), nil
}

// fitBinary trains one averaged-perceptron separator for label vs rest.
// Iteration order is the seeded shuffle; no per-epoch reshuffle, so training
// is fully deterministic.
func fitBinary(vectors []map[int]float64, train []domain.TrainingExample, label domain.Intent, dim int, bias *float64) []float64 {
	w := make([]float64, dim)
	u := make([]float64, dim)
	var b, ub float64
	count := 1.0

	for epoch := 0; epoch < epochs; epoch++ {
		for i, x := range vectors {
			y := -1.0
			if train[i].Intent == label {
				y = 1.0
			}
			s := b
			for idx, v := range x {
				s += w[idx] * v
			}
			if y*s <= 0 {
				for idx, v := range x {
					w[idx] += y * v
					u[idx] += y * count * v
				}
				b += y
				ub += y * count
			}
			count++
		}
	}

	for idx := range w {
		w[idx] -= u[idx] / count
	}
	*bias = b - ub/count
	return w
}

func evaluate(model *Model, test []domain.TrainingExample, trainSize int) domain.EvaluationReport {
	type counts struct{ tp, fp, fn int }
	perLabel := make(map[domain.Intent]*counts, len(model.Labels))
	for _, label := range model.Labels {
		perLabel[label] = &counts{}
	}

	correct := 0
	for _, ex := range test {
		predicted := model.Predict(ex.Text)
		if predicted == ex.Intent {
			correct++
		}
		if c, ok := perLabel[predicted]; ok && predicted != ex.Intent {
			c.fp++
		}
		if c, ok := perLabel[ex.Intent]; ok {
			if predicted == ex.Intent {
				c.tp++
			} else {
				c.fn++
			}
		}
	}

	report := domain.EvaluationReport{
		TrainSize: trainSize,
		TestSize:  len(test),
		Labels:    make([]domain.LabelMetrics, 0, len(model.Labels)),
	}
	if len(test) > 0 {
		report.Accuracy = float64(correct) / float64(len(test))
	}
	for _, label := range model.Labels {
		c := perLabel[label]
		m := domain.LabelMetrics{Label: label, Support: c.tp + c.fn}
		if c.tp+c.fp > 0 {
			m.Precision = float64(c.tp) / float64(c.tp+c.fp)
		}
		if c.tp+c.fn > 0 {
			m.Recall = float64(c.tp) / float64(c.tp+c.fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Labels = append(report.Labels, m)
	}
	return report
}
