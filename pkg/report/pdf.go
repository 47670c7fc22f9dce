package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PDFRenderer converts the HTML report to PDF via an external converter
// binary (wkhtmltopdf). When the binary is not installed the HTML bytes are
// returned as the artifact instead, so report synthesis keeps working on
// hosts without the converter.
type PDFRenderer struct {
	html   *HTMLRenderer
	binary string
	logger zerolog.Logger
}

// NewPDFRenderer wraps the HTML renderer with PDF conversion.
func NewPDFRenderer(html *HTMLRenderer, binary string, logger zerolog.Logger) *PDFRenderer {
	if binary == "" {
		binary = "wkhtmltopdf"
	}
	return &PDFRenderer{
		html:   html,
		binary: binary,
		logger: logger.With().Str("component", "pdf_renderer").Logger(),
	}
}

// Render produces the report document bytes.
func (r *PDFRenderer) Render(ctx context.Context, data Data) ([]byte, error) {
	htmlBytes, err := r.html.Render(ctx, data)
	if err != nil {
		return nil, err
	}

	binary, err := exec.LookPath(r.binary)
	if err != nil {
		r.logger.Warn().Str("binary", r.binary).Msg("pdf converter not found, emitting html artifact")
		return htmlBytes, nil
	}

	pdfBytes, err := r.convert(ctx, binary, htmlBytes)
	if err != nil {
		r.logger.Error().Err(err).Msg("pdf conversion failed, emitting html artifact")
		return htmlBytes, nil
	}
	return pdfBytes, nil
}

// convertTimeout caps one converter run; a wedged converter process must not
// stall the report worker cycle.
const convertTimeout = 2 * time.Minute

func (r *PDFRenderer) convert(ctx context.Context, binary string, htmlBytes []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "report-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "report.html")
	pdfPath := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(htmlPath, htmlBytes, 0600); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, "--quiet", htmlPath, pdfPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", binary, strings.TrimSpace(string(output)), err)
	}

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return pdfBytes, nil
}

// ArtifactPath builds the report file location: a date directory under
// baseDir with a filename derived from the interview id and candidate name.
func ArtifactPath(baseDir string, interviewID uint, candidateName string, now time.Time) string {
	dateDir := filepath.Join(baseDir, now.Format("2006-01-02"))
	filename := fmt.Sprintf("%d_%s_report.pdf", interviewID, sanitizeName(candidateName))
	return filepath.Join(dateDir, filename)
}

func sanitizeName(name string) string {
	var builder strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r == ' ':
			builder.WriteRune(' ')
		}
	}
	return strings.TrimSpace(builder.String())
}
