package intent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

type corpusSourceFake struct {
	corpus []domain.TrainingExample
	err    error
	calls  int
}

func (f *corpusSourceFake) ListTrainingExamples(context.Context) ([]domain.TrainingExample, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.corpus, nil
}

type artifactStoreFake struct {
	blobs map[string][]byte
}

func newArtifactStoreFake() *artifactStoreFake {
	return &artifactStoreFake{blobs: make(map[string][]byte)}
}

func (f *artifactStoreFake) Save(_ context.Context, key string, data io.Reader) error {
	blob, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.blobs[key] = blob
	return nil
}

func (f *artifactStoreFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	blob, ok := f.blobs[key]
	if !ok {
		return nil, errors.New("artifact not found")
	}
	return io.NopCloser(bytes.NewReader(blob)), nil
}

func (f *artifactStoreFake) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.blobs[key]
	return ok, nil
}

func TestServiceBootstrapTrainsWhenArtifactMissing(t *testing.T) {
	source := &corpusSourceFake{corpus: fixtureCorpus()}
	store := newArtifactStoreFake()
	svc := NewService(source, store, "intent_model.gob")

	report, trained, err := svc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if !trained {
		t.Fatalf("expected lazy training on missing artifact")
	}
	if report.TrainSize == 0 {
		t.Fatalf("expected non-empty training partition in report")
	}
	if _, ok := store.blobs["intent_model.gob"]; !ok {
		t.Fatalf("expected artifact persisted after bootstrap")
	}
	if got := svc.Predict(context.Background(), "hello"); got != domain.IntentGreeting {
		t.Fatalf("Predict after bootstrap = %s, want greeting", got)
	}
}

func TestServiceBootstrapReloadsExistingArtifact(t *testing.T) {
	source := &corpusSourceFake{corpus: fixtureCorpus()}
	store := newArtifactStoreFake()
	first := NewService(source, store, "intent_model.gob")
	if _, _, err := first.Bootstrap(context.Background()); err != nil {
		t.Fatalf("first Bootstrap() error = %v", err)
	}
	trainCalls := source.calls

	second := NewService(source, store, "intent_model.gob")
	_, trained, err := second.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("second Bootstrap() error = %v", err)
	}
	if trained {
		t.Fatalf("expected artifact reload, not training")
	}
	if source.calls != trainCalls {
		t.Fatalf("expected no corpus reads on reload, got %d extra", source.calls-trainCalls)
	}
	if got := second.Predict(context.Background(), "how do i return a product"); got != domain.IntentReturnPolicy {
		t.Fatalf("Predict after reload = %s, want return_policy", got)
	}
}

func TestServiceBootstrapMissingCorpusIsFatal(t *testing.T) {
	source := &corpusSourceFake{err: domain.WrapError(domain.ErrDataUnavailable, "read corpus", errors.New("no such file"))}
	svc := NewService(source, newArtifactStoreFake(), "intent_model.gob")

	_, _, err := svc.Bootstrap(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestServicePredictBeforeBootstrapFallsBack(t *testing.T) {
	svc := NewService(&corpusSourceFake{}, newArtifactStoreFake(), "intent_model.gob")
	if got := svc.Predict(context.Background(), "hello"); got != domain.IntentFallback {
		t.Fatalf("expected fallback without a model, got %s", got)
	}
}

func TestServiceRetrainSwapsServedModel(t *testing.T) {
	source := &corpusSourceFake{corpus: fixtureCorpus()}
	store := newArtifactStoreFake()
	svc := NewService(source, store, "intent_model.gob")
	if _, err := svc.Retrain(context.Background()); err != nil {
		t.Fatalf("Retrain() error = %v", err)
	}
	if got := svc.Predict(context.Background(), "does this come with warranty"); got != domain.IntentWarranty {
		t.Fatalf("Predict after retrain = %s, want warranty", got)
	}
}
