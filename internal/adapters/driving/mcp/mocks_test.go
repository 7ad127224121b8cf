package mcp

import (
	"context"
	"fmt"

	"github.com/fileforge/convertd/internal/core/domain"
)

// mockConvertService is a mock implementation of driving.ConvertService.
type mockConvertService struct {
	outcome domain.Outcome
	gotReq  domain.ConversionRequest
	called  bool
}

func (m *mockConvertService) Convert(_ context.Context, req domain.ConversionRequest) domain.Outcome {
	m.called = true
	m.gotReq = req
	return m.outcome
}

func (m *mockConvertService) Supports(_, _ string) bool {
	return true
}

// mockResolver is a mock implementation of PathResolver.
type mockResolver struct {
	resolved string
	err      error
	gotPath  string
}

func (m *mockResolver) Resolve(path string) (string, error) {
	m.gotPath = path
	if m.err != nil {
		return "", m.err
	}
	if m.resolved != "" {
		return m.resolved, nil
	}
	return path, nil
}

var errResolve = fmt.Errorf("input file not found: report.docx")
