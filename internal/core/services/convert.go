package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fileforge/convertd/internal/core/domain"
	"github.com/fileforge/convertd/internal/core/ports/driven"
	"github.com/fileforge/convertd/internal/core/ports/driving"
	"github.com/fileforge/convertd/internal/logger"
	"github.com/fileforge/convertd/internal/payload"
	"github.com/fileforge/convertd/internal/workspace"
)

// Ensure ConversionService implements the interface.
var _ driving.ConvertService = (*ConversionService)(nil)

// ConversionService orchestrates one conversion per call:
// validate, acquire workspace, resolve input, invoke capability, stage
// output, optionally publish, release workspace. Requests are
// independent and share only the read-only dispatch table, so the
// service is safe for concurrent use.
type ConversionService struct {
	table     *Table
	fetcher   driven.Fetcher
	publisher driven.Publisher
	outputDir string
	baseURL   string

	// acquire is swappable so tests can observe the workspace.
	acquire func() (*workspace.Workspace, error)
}

// NewConversionService creates the orchestrator. publisher may be nil,
// in which case publication is not requested and conversions succeed on
// local staging alone. baseURL, when set, is used to build the
// caller-facing download URL for the staged artifact.
func NewConversionService(
	table *Table,
	fetcher driven.Fetcher,
	publisher driven.Publisher,
	outputDir string,
	baseURL string,
) *ConversionService {
	return &ConversionService{
		table:     table,
		fetcher:   fetcher,
		publisher: publisher,
		outputDir: outputDir,
		baseURL:   baseURL,
		acquire:   workspace.Acquire,
	}
}

// Supports reports whether a format pair is mapped to a capability.
func (s *ConversionService) Supports(sourceFormat, targetFormat string) bool {
	return s.table.Supports(sourceFormat, targetFormat)
}

// Convert runs one request to a terminal outcome. Every fault is mapped
// to the failure shape; nothing propagates past this boundary, and the
// workspace is released on every path.
func (s *ConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("conversion panic: %v", r)
			out = domain.Failedf(fmt.Sprintf("internal error: %v", r))
		}
	}()

	// Validation happens before any resource allocation.
	if err := req.Validate(); err != nil {
		return domain.Failed(err)
	}
	binding, err := s.table.Lookup(req.SourceFormat, req.TargetFormat)
	if err != nil {
		return domain.Failed(err)
	}

	ws, err := s.acquire()
	if err != nil {
		return domain.Failed(err)
	}
	defer ws.Release()

	logger.Debug("converting %s to %s via %s", req.SourceFormat, req.TargetFormat, binding.Capability.Name())

	in, err := s.resolveInput(ctx, req, binding, ws)
	if err != nil {
		return domain.Failed(err)
	}

	workOut := ws.Path(fmt.Sprintf("output_%d.%s", time.Now().Unix(), binding.OutputExt))
	if err := binding.Capability.Convert(ctx, in, workOut); err != nil {
		return domain.Failed(fmt.Errorf("%w: %s: %v", domain.ErrCapability, binding.Capability.Name(), err))
	}

	// A capability that returns cleanly but writes nothing is still a
	// failure; silent no-ops in delegated tools must not yield Success.
	if _, err := os.Stat(workOut); err != nil {
		return domain.Failed(fmt.Errorf("%w: %s produced no output file", domain.ErrCapability, binding.Capability.Name()))
	}

	durablePath, err := s.stageOutput(workOut, binding.OutputExt)
	if err != nil {
		return domain.Failed(err)
	}

	remoteName := filepath.Base(durablePath)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, durablePath, remoteName); err != nil {
			return domain.Failed(fmt.Errorf("%w: %v", domain.ErrPublication, err))
		}
	}

	return domain.Succeeded(durablePath, s.downloadURL(remoteName))
}

// resolveInput turns the request's single input into what the bound
// capability wants: a local file path or an in-memory text payload. The
// extraction engine runs only for raw-text inputs.
func (s *ConversionService) resolveInput(
	ctx context.Context,
	req domain.ConversionRequest,
	binding Binding,
	ws *workspace.Workspace,
) (driven.CapabilityInput, error) {
	in := driven.CapabilityInput{TargetFormat: req.TargetFormat}

	switch req.Input.Kind {
	case domain.InputRawText:
		text := payload.Extract(req.Input.Value)
		if binding.Capability.Staging() == driven.StageText {
			in.Text = text
			return in, nil
		}
		path, err := ws.WriteFile(inputName(req.SourceFormat), []byte(text))
		if err != nil {
			return in, fmt.Errorf("%w: %v", domain.ErrInputResolution, err)
		}
		in.Path = path
		return in, nil

	case domain.InputInlineBytes:
		data, err := base64.StdEncoding.DecodeString(req.Input.Value)
		if err != nil {
			return in, fmt.Errorf("%w: decoding base64 content: %v", domain.ErrInputResolution, err)
		}
		return s.stageBytes(binding, ws, data, inputName(req.SourceFormat), req.TargetFormat)

	case domain.InputRemoteURL:
		data, err := s.fetch(ctx, req.Input.Value)
		if err != nil {
			return in, err
		}
		name := fmt.Sprintf("input_%d%s", time.Now().Unix(), urlSuffix(req.Input.Value, req.SourceFormat))
		return s.stageBytes(binding, ws, data, name, req.TargetFormat)

	default: // domain.InputLocalPath
		// The path is trusted as-is here; ambiguous references are
		// resolved by the file-resolver collaborator before the request
		// is built.
		if binding.Capability.Staging() == driven.StageText {
			data, err := os.ReadFile(req.Input.Value)
			if err != nil {
				return in, fmt.Errorf("%w: reading %s: %v", domain.ErrInputResolution, req.Input.Value, err)
			}
			in.Text = string(data)
			return in, nil
		}
		in.Path = req.Input.Value
		return in, nil
	}
}

func (s *ConversionService) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured for remote URLs", domain.ErrInputResolution)
	}
	data, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading %s: %v", domain.ErrInputResolution, rawURL, err)
	}
	return data, nil
}

// stageBytes writes downloaded or decoded input into the workspace and
// shapes it for the capability's staging mode.
func (s *ConversionService) stageBytes(
	binding Binding,
	ws *workspace.Workspace,
	data []byte,
	name string,
	targetFormat string,
) (driven.CapabilityInput, error) {
	in := driven.CapabilityInput{TargetFormat: targetFormat}
	if binding.Capability.Staging() == driven.StageText {
		in.Text = string(data)
		return in, nil
	}
	path, err := ws.WriteFile(name, data)
	if err != nil {
		return in, fmt.Errorf("%w: %v", domain.ErrInputResolution, err)
	}
	in.Path = path
	return in, nil
}

// stageOutput moves the capability's output to the durable output
// directory under a request-unique name.
func (s *ConversionService) stageOutput(workOut, ext string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating output directory: %v", domain.ErrStaging, err)
	}
	name := fmt.Sprintf("output_%d_%s.%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	durable := filepath.Join(s.outputDir, name)
	if err := moveFile(workOut, durable); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStaging, err)
	}
	return durable, nil
}

func (s *ConversionService) downloadURL(name string) string {
	if s.baseURL == "" {
		return ""
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + name
}

// inputName builds a workspace file name for staged input bytes.
func inputName(sourceFormat string) string {
	return fmt.Sprintf("input_%d.%s", time.Now().Unix(), sourceFormat)
}

// urlSuffix derives a file suffix from the URL path, query string
// stripped, falling back to the declared source format.
func urlSuffix(rawURL, sourceFormat string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	return "." + sourceFormat
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// two live on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
