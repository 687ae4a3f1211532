package eseries

import (
	"context"

	"github.com/kailas-cloud/eseries/internal/domain/search/request"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
	"github.com/kailas-cloud/eseries/internal/domain/series"
	healthuc "github.com/kailas-cloud/eseries/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) ([]result.Result, error)
	lastReq  *request.Request
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	m.lastReq = req
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) CapacitorSeries() series.Series { return series.E12() }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
