package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WhisperCppEngine runs whisper.cpp through its CLI binary. Models are ggml
// files named ggml-<size>.bin inside ModelDir.
type WhisperCppEngine struct {
	Binary   string
	ModelDir string
}

// NewWhisperCppEngine constructs an engine for the given binary and model directory.
func NewWhisperCppEngine(binary, modelDir string) *WhisperCppEngine {
	if binary == "" {
		binary = "whisper-cli"
	}
	return &WhisperCppEngine{Binary: binary, ModelDir: modelDir}
}

// Accelerated reports whether an NVIDIA GPU is visible to the process.
func (e *WhisperCppEngine) Accelerated() bool {
	if _, err := os.Stat("/dev/nvidia0"); err == nil {
		return true
	}
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}

// Load verifies the binary and the requested model file exist and returns a
// handle bound to them.
func (e *WhisperCppEngine) Load(size, device string) (ModelHandle, error) {
	binary, err := exec.LookPath(e.Binary)
	if err != nil {
		return nil, fmt.Errorf("whisper binary not found: %w", err)
	}

	modelPath := filepath.Join(e.ModelDir, fmt.Sprintf("ggml-%s.bin", size))
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file %s: %w", modelPath, err)
	}

	return &whisperHandle{binary: binary, modelPath: modelPath, device: device}, nil
}

type whisperHandle struct {
	binary    string
	modelPath string
	device    string
}

func (h *whisperHandle) Transcribe(ctx context.Context, path, language string) (string, error) {
	args := []string{"-m", h.modelPath, "-l", language, "-f", path, "--no-timestamps", "--no-prints"}
	if h.device != "gpu" {
		args = append(args, "--no-gpu")
	}

	output, err := exec.CommandContext(ctx, h.binary, args...).Output()
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}
