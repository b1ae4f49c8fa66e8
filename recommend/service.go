package recommend

import (
	"errors"
	"fmt"

	"croprec/ml"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Status is the lifecycle state of the classifier held by a Service.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// ErrClassifierUnavailable is returned by Predict when no classifier was loaded.
var ErrClassifierUnavailable = errors.New("classifier is not loaded")

// PredictionError wraps any failure raised by the classifier during inference.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return "prediction failed: " + e.Err.Error()
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// Service owns the classifier for the lifetime of the process. It is
// read-only after construction and safe for concurrent use.
type Service struct {
	classifier ml.Classifier
	status     Status
	modelPath  string
	loadErr    error
	cacheSize  int
	cache      *lru.Cache[FeatureRecord, string]
	logger     *zap.Logger
}

type Option func(*Service)

// WithCacheSize memoizes up to size labels keyed by feature record. Zero
// disables the memo.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cacheSize = size
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open loads the artifact at path exactly once. A failed load is final:
// the returned Service reports StatusFailed and never retries.
func Open(path string, opts ...Option) *Service {
	s := newService(opts)
	s.modelPath = path

	classifier, err := ml.LoadClassifier(path)
	if err != nil {
		s.status = StatusFailed
		s.loadErr = err
		s.logger.Error("classifier load failed", zap.String("path", path), zap.Error(err))
		return s
	}

	s.classifier = classifier
	s.status = StatusLoaded
	s.logger.Info("classifier loaded", zap.String("path", path))
	return s
}

// NewService wraps an already constructed classifier. A nil classifier
// yields a Service with no prediction capability.
func NewService(classifier ml.Classifier, opts ...Option) *Service {
	s := newService(opts)
	if classifier == nil {
		s.status = StatusFailed
		s.loadErr = ErrClassifierUnavailable
		return s
	}
	s.classifier = classifier
	s.status = StatusLoaded
	return s
}

func newService(opts []Option) *Service {
	s := &Service{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.cacheSize > 0 {
		// lru.New only fails on a non-positive size
		s.cache, _ = lru.New[FeatureRecord, string](s.cacheSize)
	}
	return s
}

func (s *Service) Status() Status {
	return s.status
}

// Ready reports whether predictions can be offered.
func (s *Service) Ready() bool {
	return s.status == StatusLoaded
}

// ModelPath is the artifact path given to Open, empty for NewService.
func (s *Service) ModelPath() string {
	return s.modelPath
}

// Classes lists the labels the classifier can emit, or nil when it is not
// loaded or does not expose them.
func (s *Service) Classes() []string {
	if !s.Ready() {
		return nil
	}
	if labeled, ok := s.classifier.(ml.Labeled); ok {
		return labeled.Classes()
	}
	return nil
}

func (s *Service) LoadError() error {
	return s.loadErr
}

// LoadMessage is the user-visible description of a failed load, or "".
func (s *Service) LoadMessage() string {
	if s.status != StatusFailed || errors.Is(s.loadErr, ErrClassifierUnavailable) {
		return ""
	}
	return LoadFailureMessage(s.modelPath, s.loadErr)
}

// Predict runs the classifier on a single record and returns the
// capitalized label.
func (s *Service) Predict(record FeatureRecord) (string, error) {
	if !s.Ready() {
		return "", ErrClassifierUnavailable
	}
	if s.cache != nil {
		if label, ok := s.cache.Get(record); ok {
			return label, nil
		}
	}

	labels, err := s.classify(record.Vector())
	if err != nil {
		s.logger.Warn("prediction failed", zap.Any("record", record), zap.Error(err))
		return "", &PredictionError{Err: err}
	}
	if len(labels) == 0 {
		err := errors.New("classifier returned no labels")
		s.logger.Warn("prediction failed", zap.Any("record", record), zap.Error(err))
		return "", &PredictionError{Err: err}
	}

	label := Capitalize(labels[0])
	if s.cache != nil {
		s.cache.Add(record, label)
	}
	s.logger.Debug("prediction", zap.Any("record", record), zap.String("label", label))
	return label, nil
}

func (s *Service) classify(row []float64) (labels []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier panicked: %v", r)
		}
	}()
	return s.classifier.Predict([][]float64{row})
}
