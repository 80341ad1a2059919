package rendering

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCompileTimeout bounds one compiler invocation. When it elapses the
// subprocess is killed and the job fails with a timeout error.
const DefaultCompileTimeout = 30 * time.Second

// Compiler is the narrow capability interface over the external document
// compiler. Tests substitute a fake; production uses PDFLaTeX.
type Compiler interface {
	// Compile turns the LaTeX source at sourcePath into a PDF inside
	// outputDir, returning the artifact path and any diagnostic output.
	Compile(ctx context.Context, sourcePath, outputDir string) (pdfPath string, diagnostics string, err error)
}

// PDFLaTeX drives the pdflatex subprocess.
type PDFLaTeX struct {
	// Binary overrides the executable name, mainly for tests.
	Binary string
}

// Compile runs pdflatex in nonstop mode against sourcePath. The context
// bounds the subprocess: on expiry it is killed and a timeout
// CompilationError is returned. Diagnostics always carry the combined
// stdout/stderr so compiler failures surface with usable detail.
func (p *PDFLaTeX) Compile(ctx context.Context, sourcePath, outputDir string) (string, string, error) {
	binary := p.Binary
	if binary == "" {
		binary = "pdflatex"
	}

	if _, err := exec.LookPath(binary); err != nil {
		return "", "", &CompilationError{
			Reason:  FailureCompilerError,
			Message: fmt.Sprintf("%s not found in PATH", binary),
			Cause:   err,
		}
	}

	cmd := exec.CommandContext(ctx, binary, "-interaction=nonstopmode", "-halt-on-error",
		"-output-directory", outputDir, sourcePath)

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	runErr := cmd.Run()
	diagnostics := output.String()

	if ctx.Err() != nil || errors.Is(runErr, context.DeadlineExceeded) {
		return "", diagnostics, &CompilationError{
			Reason:      FailureTimeout,
			Message:     "compiler killed after timeout",
			Diagnostics: diagnostics,
			Cause:       ctx.Err(),
		}
	}

	pdfPath := filepath.Join(outputDir,
		strings.TrimSuffix(filepath.Base(sourcePath), ".tex")+".pdf")

	if _, err := os.Stat(pdfPath); err != nil {
		return "", diagnostics, &CompilationError{
			Reason:      FailureCompilerError,
			Message:     "compiler produced no PDF",
			Diagnostics: diagnostics,
			Cause:       runErr,
		}
	}

	if runErr != nil {
		return "", diagnostics, &CompilationError{
			Reason:      FailureCompilerError,
			Message:     "compiler exited with an error",
			Diagnostics: diagnostics,
			Cause:       runErr,
		}
	}

	return pdfPath, diagnostics, nil
}
