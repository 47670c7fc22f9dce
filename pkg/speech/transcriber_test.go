package speech

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	text string
	err  error

	hadDeadline bool
}

func (h *fakeHandle) Transcribe(ctx context.Context, path, language string) (string, error) {
	_, h.hadDeadline = ctx.Deadline()
	if h.err != nil {
		return "", h.err
	}
	return h.text, nil
}

type fakeEngine struct {
	accelerated bool
	loadErrs    map[string]error
	handle      *fakeHandle

	mu    sync.Mutex
	loads []string
}

func (e *fakeEngine) Accelerated() bool { return e.accelerated }

func (e *fakeEngine) Load(size, device string) (ModelHandle, error) {
	e.mu.Lock()
	e.loads = append(e.loads, size+"/"+device)
	e.mu.Unlock()

	if err := e.loadErrs[size]; err != nil {
		return nil, err
	}
	if e.handle == nil {
		return &fakeHandle{text: "hello"}, nil
	}
	return e.handle, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestTranscribeLoadsConfiguredSizeOnGPU(t *testing.T) {
	engine := &fakeEngine{accelerated: true}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	text := svc.Transcribe(context.Background(), []byte("audio"))
	require.Equal(t, "hello", text)
	require.Equal(t, []string{"small/gpu"}, engine.loads)
}

func TestTranscribeFallsBackToBaseOnCPU(t *testing.T) {
	engine := &fakeEngine{accelerated: false}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	svc.Transcribe(context.Background(), []byte("audio"))
	require.Equal(t, []string{"base/cpu"}, engine.loads)
}

func TestTranscribeFallsBackToTinyWhenLoadFails(t *testing.T) {
	engine := &fakeEngine{
		accelerated: false,
		loadErrs:    map[string]error{"base": errors.New("model missing")},
	}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	text := svc.Transcribe(context.Background(), []byte("audio"))
	require.Equal(t, "hello", text)
	require.Equal(t, []string{"base/cpu", "tiny/cpu"}, engine.loads)
}

func TestTranscribeReturnsSentinelWhenAllLoadsFail(t *testing.T) {
	engine := &fakeEngine{
		loadErrs: map[string]error{
			"base": errors.New("model missing"),
			"tiny": errors.New("model missing"),
		},
	}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	require.Equal(t, Sentinel, svc.Transcribe(context.Background(), []byte("audio")))
}

// The configured timeout must reach the engine call so a wedged transcriber
// process cannot stall answer submission.
func TestTranscribeBoundsEngineCall(t *testing.T) {
	handle := &fakeHandle{text: "bounded"}
	engine := &fakeEngine{handle: handle}
	svc := NewService(engine, "small", "zh", 100*time.Millisecond, testLogger())

	require.Equal(t, "bounded", svc.Transcribe(context.Background(), []byte("audio")))
	require.True(t, handle.hadDeadline)
}

func TestTranscribeUnboundedWithoutTimeout(t *testing.T) {
	handle := &fakeHandle{text: "hello"}
	engine := &fakeEngine{handle: handle}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	svc.Transcribe(context.Background(), []byte("audio"))
	require.False(t, handle.hadDeadline)
}

func TestTranscribeReturnsSentinelOnTranscriptionError(t *testing.T) {
	engine := &fakeEngine{handle: &fakeHandle{err: errors.New("decode failed")}}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	require.Equal(t, Sentinel, svc.Transcribe(context.Background(), []byte("audio")))
}

func TestModelLoadedExactlyOnceUnderConcurrency(t *testing.T) {
	engine := &fakeEngine{accelerated: true}
	svc := NewService(engine, "small", "zh", 0, testLogger())

	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Add(1)
			svc.Transcribe(context.Background(), []byte("audio"))
		}()
	}
	wg.Wait()

	require.Equal(t, int32(16), started.Load())
	require.Len(t, engine.loads, 1)
}
