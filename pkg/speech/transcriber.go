// Package speech wraps a speech-to-text engine behind a lazily initialised,
// process-wide service. Model loading is expensive, so the handle is
// constructed once on first use and shared for the lifetime of the process.
package speech

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel returned when transcription fails. Answer submission must not
// abort because the audio could not be understood.
const Sentinel = "speech not recognized"

// Fixed fallback sizes used when the configured model cannot be served.
const (
	sizeBase = "base"
	sizeTiny = "tiny"
)

// ModelHandle is a loaded speech model ready to transcribe audio files.
type ModelHandle interface {
	Transcribe(ctx context.Context, path, language string) (string, error)
}

// Engine loads speech models onto a device. Accelerated reports whether GPU
// hardware is usable.
type Engine interface {
	Accelerated() bool
	Load(size, device string) (ModelHandle, error)
}

// Transcriber converts raw audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) string
}

// Service is the shared transcription front end. The first caller loads the
// model under the write lock; concurrent first-callers block on that load
// instead of duplicating it, and later calls take only the read lock.
type Service struct {
	engine   Engine
	size     string
	language string
	timeout  time.Duration
	logger   zerolog.Logger

	mu     sync.RWMutex
	handle ModelHandle
}

// NewService builds a transcription service over the given engine. size is
// the model size used when accelerated hardware is available; timeout bounds
// each transcription call, zero disables the bound.
func NewService(engine Engine, size, language string, timeout time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		engine:   engine,
		size:     size,
		language: language,
		timeout:  timeout,
		logger:   logger.With().Str("component", "speech_service").Logger(),
	}
}

// Transcribe writes the audio to a temporary file, runs the model and returns
// the transcript. The temporary file is removed on every exit path. Any
// internal failure yields the sentinel text instead of an error.
func (s *Service) Transcribe(ctx context.Context, audio []byte) string {
	handle, err := s.model()
	if err != nil {
		s.logger.Error().Err(err).Msg("speech model unavailable")
		return Sentinel
	}

	tmp, err := os.CreateTemp("", "answer-*.wav")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create temp audio file")
		return Sentinel
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		s.logger.Error().Err(err).Msg("failed to write temp audio file")
		return Sentinel
	}
	if err := tmp.Close(); err != nil {
		s.logger.Error().Err(err).Msg("failed to close temp audio file")
		return Sentinel
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := handle.Transcribe(ctx, tmpPath, s.language)
	if err != nil {
		s.logger.Error().Err(err).Msg("transcription failed")
		return Sentinel
	}

	return text
}

func (s *Service) model() (ModelHandle, error) {
	s.mu.RLock()
	handle := s.handle
	s.mu.RUnlock()
	if handle != nil {
		return handle, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return s.handle, nil
	}

	handle, err := s.load()
	if err != nil {
		return nil, err
	}
	s.handle = handle
	return handle, nil
}

// load picks the model per the hardware policy: configured size on the GPU
// when one is usable, otherwise the base size on CPU, with the tiny model as
// the final fallback when that load fails too.
func (s *Service) load() (ModelHandle, error) {
	size := sizeBase
	device := "cpu"
	if s.engine.Accelerated() {
		size = s.size
		device = "gpu"
	}

	handle, err := s.engine.Load(size, device)
	if err == nil {
		s.logger.Info().Str("size", size).Str("device", device).Msg("speech model loaded")
		return handle, nil
	}
	s.logger.Warn().Err(err).Str("size", size).Str("device", device).Msg("speech model load failed, falling back to tiny")

	handle, err = s.engine.Load(sizeTiny, "cpu")
	if err != nil {
		return nil, fmt.Errorf("load fallback model: %w", err)
	}
	s.logger.Info().Str("size", sizeTiny).Str("device", "cpu").Msg("speech model loaded")
	return handle, nil
}
