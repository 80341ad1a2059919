package rendering

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultMaxArtifactBytes is the artifact size ceiling. Anything larger is
// treated as a compilation failure.
const DefaultMaxArtifactBytes = 10 << 20 // 10MB

// JobState is a render job's position in its lifecycle. Both terminal states
// transition to StateCleaned once the workspace is removed.
type JobState string

const (
	StateCreated           JobState = "created"
	StateTemplatePopulated JobState = "template-populated"
	StateCompiling         JobState = "compiling"
	StateSucceeded         JobState = "succeeded"
	StateFailed            JobState = "failed"
	StateCleaned           JobState = "cleaned"
)

// workspacePrefix tags every ephemeral render workspace so cleanup can be
// verified per job id.
const workspacePrefix = "cv-render-"

// Config holds renderer settings. Zero values use the documented defaults.
type Config struct {
	// WorkRoot is the parent directory for ephemeral job workspaces.
	// Empty means the system temp directory.
	WorkRoot string
	// ArtifactDir receives successful artifacts. Empty means WorkRoot.
	ArtifactDir string
	// CompileTimeout bounds the compiler subprocess.
	CompileTimeout time.Duration
	// MaxArtifactBytes is the artifact size ceiling.
	MaxArtifactBytes int64
	// OnStateChange, when set, observes every job state transition.
	OnStateChange func(jobID string, state JobState)
}

// Renderer turns render requests into PDF artifacts. Each job runs in a
// uniquely-named ephemeral workspace that never outlives the job.
type Renderer struct {
	compiler Compiler
	validate *validator.Validate
	config   Config
}

// NewRenderer creates a Renderer driving the given compiler.
func NewRenderer(compiler Compiler, config Config) *Renderer {
	if config.CompileTimeout <= 0 {
		config.CompileTimeout = DefaultCompileTimeout
	}
	if config.MaxArtifactBytes <= 0 {
		config.MaxArtifactBytes = DefaultMaxArtifactBytes
	}
	if config.WorkRoot == "" {
		config.WorkRoot = os.TempDir()
	}
	if config.ArtifactDir == "" {
		config.ArtifactDir = config.WorkRoot
	}

	return &Renderer{
		compiler: compiler,
		validate: validator.New(),
		config:   config,
	}
}

// Render runs one render job: validate, populate, compile, check, export,
// clean. It yields either a complete valid artifact or no artifact at all;
// the workspace and every intermediate file are removed on all exit paths.
func (r *Renderer) Render(ctx context.Context, req *types.RenderRequest) (*types.RenderResult, error) {
	if err := r.validateRequest(req); err != nil {
		return nil, err
	}

	templateName := sanitizeTemplate(req.Template)
	jobID := uuid.NewString()

	job := &renderJob{id: jobID, onChange: r.config.OnStateChange}
	job.setState(StateCreated)

	workspace := filepath.Join(r.config.WorkRoot, workspacePrefix+jobID)
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create job workspace: %w", err)
	}
	// Every exit path removes the workspace, then marks the job cleaned.
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			log.Printf("rendering: failed to clean workspace for job %s: %v", jobID, err)
		}
		job.setState(StateCleaned)
	}()

	source, err := Populate(&req.CVData, templateName, req.Options)
	if err != nil {
		job.setState(StateFailed)
		return nil, err
	}
	job.setState(StateTemplatePopulated)

	sourcePath := filepath.Join(workspace, "cv.tex")
	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		job.setState(StateFailed)
		return nil, fmt.Errorf("failed to write source file: %w", err)
	}

	job.setState(StateCompiling)
	compileCtx, cancel := context.WithTimeout(ctx, r.config.CompileTimeout)
	defer cancel()

	pdfPath, _, err := r.compiler.Compile(compileCtx, sourcePath, workspace)
	if err != nil {
		job.setState(StateFailed)
		return nil, err
	}

	info, err := os.Stat(pdfPath)
	if err != nil {
		job.setState(StateFailed)
		return nil, &CompilationError{
			Reason:  FailureEmptyOutput,
			Message: "artifact missing after compile",
			Cause:   err,
		}
	}
	if info.Size() == 0 {
		job.setState(StateFailed)
		return nil, &CompilationError{
			Reason:  FailureEmptyOutput,
			Message: "compiler produced a zero-byte artifact",
		}
	}
	if info.Size() > r.config.MaxArtifactBytes {
		job.setState(StateFailed)
		return nil, &CompilationError{
			Reason:  FailureOversized,
			Message: fmt.Sprintf("artifact is %d bytes, ceiling is %d", info.Size(), r.config.MaxArtifactBytes),
		}
	}

	filename := fmt.Sprintf("cv-%s-%s.pdf", templateName, jobID)
	artifactPath, err := r.exportArtifact(pdfPath, filename)
	if err != nil {
		job.setState(StateFailed)
		return nil, err
	}

	job.setState(StateSucceeded)
	return &types.RenderResult{
		JobID:        jobID,
		Filename:     filename,
		SizeBytes:    info.Size(),
		GeneratedAt:  time.Now().UTC(),
		TemplateUsed: templateName,
		ArtifactPath: artifactPath,
	}, nil
}

// validateRequest enforces the only hard input requirements: personal name
// and email. Template and option values are sanitized later, never rejected.
func (r *Renderer) validateRequest(req *types.RenderRequest) error {
	if req == nil {
		return &ValidationError{Field: "request", Message: "request is required"}
	}

	err := r.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return &ValidationError{
			Field:   first.Namespace(),
			Message: fmt.Sprintf("failed %q validation", first.Tag()),
		}
	}
	return &ValidationError{Field: "request", Message: err.Error()}
}

// exportArtifact copies the compiled PDF out of the doomed workspace into
// the artifact directory.
func (r *Renderer) exportArtifact(pdfPath, filename string) (string, error) {
	if err := os.MkdirAll(r.config.ArtifactDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact: %w", err)
	}

	artifactPath := filepath.Join(r.config.ArtifactDir, filename)
	if err := os.WriteFile(artifactPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to export artifact: %w", err)
	}

	return artifactPath, nil
}

// renderJob tracks lifecycle state for one render job.
type renderJob struct {
	id       string
	state    JobState
	onChange func(jobID string, state JobState)
}

func (j *renderJob) setState(state JobState) {
	j.state = state
	if j.onChange != nil {
		j.onChange(j.id, state)
	}
}
