package repository

import (
	"context"
	"sync"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu      sync.RWMutex
	dataset *model.Dataset
	index   map[types.CapabilityID]*model.Capability
	reports map[types.ReportID]*model.Report
}

// NewMemory creates a new memory repository. The dataset is empty until
// PutDataset is called.
func NewMemory() *Memory {
	return &Memory{
		index:   make(map[types.CapabilityID]*model.Capability),
		reports: make(map[types.ReportID]*model.Report),
	}
}

// NewMemoryWithDataset creates a memory repository holding the dataset
func NewMemoryWithDataset(ctx context.Context, dataset *model.Dataset) (*Memory, error) {
	m := NewMemory()
	if err := m.PutDataset(ctx, dataset); err != nil {
		return nil, err
	}
	return m, nil
}

var _ interfaces.Repository = (*Memory)(nil)

// GetDataset returns a copy of the stored dataset
func (m *Memory) GetDataset(ctx context.Context) (*model.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.dataset == nil {
		return nil, goerr.Wrap(model.ErrDatasetNotFound, "memory repository has no dataset")
	}

	// Return a copy to prevent external modification
	return m.dataset.Clone(), nil
}

// PutDataset validates and replaces the stored dataset as a whole.
// Readers observe either the previous or the new dataset, never a mix.
func (m *Memory) PutDataset(ctx context.Context, dataset *model.Dataset) error {
	if dataset == nil {
		return goerr.New("dataset is nil")
	}
	if err := dataset.Validate(); err != nil {
		return goerr.Wrap(err, "invalid dataset")
	}

	// Deep copy to prevent external modifications
	stored := dataset.Clone()
	index := make(map[types.CapabilityID]*model.Capability)
	for _, c := range stored.Capabilities() {
		index[c.ID] = c
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.dataset = stored
	m.index = index
	return nil
}

// GetCapability retrieves a leaf capability by ID
func (m *Memory) GetCapability(ctx context.Context, id types.CapabilityID) (*model.Capability, error) {
	if id == "" {
		return nil, goerr.New("capability ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.index[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrCapabilityNotFound, "failed to get capability", goerr.V("id", id))
	}

	return c.Clone(), nil
}

// PutReport saves a report to memory
func (m *Memory) PutReport(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}
	if report.ID == "" {
		return goerr.New("report ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports[report.ID] = copyReport(report)
	return nil
}

// GetReport retrieves a report by ID
func (m *Memory) GetReport(ctx context.Context, id types.ReportID) (*model.Report, error) {
	if id == "" {
		return nil, goerr.New("report ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	report, exists := m.reports[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get report", goerr.V("id", id))
	}

	return copyReport(report), nil
}

// Close does nothing for memory repository
func (m *Memory) Close() error {
	return nil
}

func copyReport(r *model.Report) *model.Report {
	out := *r
	out.Overlays = append([]types.OverlayKind(nil), r.Overlays...)
	out.Summaries = append([]*model.InsightSummary(nil), r.Summaries...)
	return &out
}
