package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/malwinabelczewska/strenpy/internal/model"
	"github.com/malwinabelczewska/strenpy/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Analyzer defines the interface for analyzing a single specimen
type Analyzer interface {
	AnalyzeFile(ctx context.Context, spec model.SpecimenConfig) (*pipeline.AnalyzeResult, error)
}

// AnalyzeJob represents a single-specimen analysis job
type AnalyzeJob struct {
	Spec     model.SpecimenConfig
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	result, err := j.Analyzer.AnalyzeFile(ctx, j.Spec)
	if err != nil {
		return &AnalyzeResult{
			Spec:   j.Spec,
			Report: nil,
			Error:  err,
		}
	}
	return &AnalyzeResult{
		Spec:   j.Spec,
		Report: result.Report,
		Error:  nil,
	}
}

// AnalyzeResult represents the result of an analysis job
type AnalyzeResult struct {
	Spec   model.SpecimenConfig
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// Manifest describes a batch of specimens to analyze. The top-level gauge
// length applies to every specimen that does not set its own.
type Manifest struct {
	GaugeLengthMM float64                `yaml:"gauge_length_mm"`
	Specimens     []model.SpecimenConfig `yaml:"specimens"`
}

// BatchProcessor analyzes multiple specimens concurrently. Each analysis is
// independent and stateless, so specimens parallelize freely.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessSpecimens analyzes multiple specimens concurrently
func (b *BatchProcessor) ProcessSpecimens(ctx context.Context, specs []model.SpecimenConfig) []*AnalyzeResult {
	if len(specs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit from a goroutine while draining results: the pool's channels are
	// bounded, so a manifest larger than the buffers would otherwise block
	// Submit before Wait ever ran.
	go func() {
		defer pool.Close()
		for _, spec := range specs {
			pool.Submit(&AnalyzeJob{
				Spec:     spec,
				Analyzer: b.analyzer,
			})
		}
	}()

	results := pool.Drain()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessManifest reads a specimen manifest and analyzes every entry
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	manifest, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessSpecimens(ctx, manifest.Specimens), nil
}

// ReadManifest reads and validates a YAML specimen manifest
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if len(m.Specimens) == 0 {
		return nil, fmt.Errorf("manifest %s lists no specimens", path)
	}

	seen := make(map[string]bool)
	for i := range m.Specimens {
		s := &m.Specimens[i]
		if s.Name == "" {
			return nil, fmt.Errorf("manifest %s: specimen %d has no name", path, i)
		}
		if s.File == "" {
			return nil, fmt.Errorf("manifest %s: specimen %q has no file", path, s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("manifest %s: duplicate specimen name %q", path, s.Name)
		}
		seen[s.Name] = true

		if s.GaugeLength == 0 {
			s.GaugeLength = m.GaugeLengthMM
		}
	}

	return &m, nil
}
