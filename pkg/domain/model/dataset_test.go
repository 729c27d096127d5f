package model_test

import (
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func newTestCapability(id types.CapabilityID, name string) *model.Capability {
	return &model.Capability{
		ID:                  id,
		Name:                name,
		Mode:                types.ModeExecute,
		ExecuteStatus:       types.ExecuteStatusOnTrack,
		MaturityLevel:       3,
		TargetMaturityLevel: 4,
		Year:                2025,
		Quarter:             types.Q1,
		ExposurePercent:     10,
	}
}

func newTestDataset() *model.Dataset {
	return &model.Dataset{
		Domains: []*model.Domain{
			{
				ID:                  "1.0",
				Name:                "Water Resource Management",
				MaturityLevel:       3,
				TargetMaturityLevel: 5,
				Areas: []*model.Area{
					{
						ID:                  "1.1",
						Name:                "Demand Forecasting",
						MaturityLevel:       3,
						TargetMaturityLevel: 4,
						Capabilities: []*model.Capability{
							newTestCapability("1.1.1", "Urban Demand"),
							newTestCapability("1.1.2", "Agricultural Demand"),
						},
					},
				},
			},
			{
				ID:                  "2.0",
				Name:                "Asset Performance",
				MaturityLevel:       2,
				TargetMaturityLevel: 4,
				Areas: []*model.Area{
					{
						ID:                  "2.1",
						Name:                "Network Integrity",
						MaturityLevel:       2,
						TargetMaturityLevel: 4,
						Capabilities: []*model.Capability{
							newTestCapability("2.1.1", "Leak Detection"),
						},
					},
				},
			},
		},
	}
}

func TestDatasetCapabilities(t *testing.T) {
	ds := newTestDataset()
	caps := ds.Capabilities()
	gt.Equal(t, len(caps), 3)
	gt.Equal(t, caps[2].ID, types.CapabilityID("2.1.1"))

	found := ds.FindCapability("1.1.2")
	gt.NotNil(t, found)
	gt.Equal(t, found.Name, "Agricultural Demand")
	gt.True(t, ds.FindCapability("9.9.9") == nil)
}

func TestDatasetValidate(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		gt.NoError(t, newTestDataset().Validate())
	})

	testCases := []struct {
		name   string
		mutate func(ds *model.Dataset)
	}{
		{
			name:   "no domains",
			mutate: func(ds *model.Dataset) { ds.Domains = nil },
		},
		{
			name:   "duplicate capability ID",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[1].ID = "1.1.1" },
		},
		{
			name:   "capability outside its area",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[1].ID = "1.2.1" },
		},
		{
			name:   "area outside its domain",
			mutate: func(ds *model.Dataset) { ds.Domains[1].Areas[0].ID = "3.1" },
		},
		{
			name:   "maturity out of range",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[0].MaturityLevel = 6 },
		},
		{
			name:   "unknown mode",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[0].Mode = "retire" },
		},
		{
			name:   "exposure over 100",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[0].ExposurePercent = 120 },
		},
		{
			name:   "missing quarter",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[0].Quarter = "" },
		},
		{
			name:   "nil capability",
			mutate: func(ds *model.Dataset) { ds.Domains[0].Areas[0].Capabilities[0] = nil },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := newTestDataset()
			tc.mutate(ds)
			gt.Error(t, ds.Validate())
		})
	}
}

func TestCapabilityMetrics(t *testing.T) {
	c := &model.Capability{
		Mode:                   types.ModeBuild,
		PolicyToolCount:        0,
		PerformanceTargetCount: 6,
		OrgGap:                 12,
		ProcessGap:             30,
		ITGap:                  30,
		MaturityLevel:          2,
		TargetMaturityLevel:    5,
		HealthHistory:          []float64{70, 80, 75, 74, 73},
	}

	gt.Equal(t, c.PressureCount(), 1)
	gt.Equal(t, c.CombinedPressure(), 6)
	gt.Equal(t, c.MaxGap(), 30.0)
	gt.Equal(t, c.MaturityGap(), 3)
	gt.Equal(t, c.RecentHealth(), []float64{75, 74, 73})
	gt.True(t, c.IsDeclining())

	c.Mode = types.ModeExecute
	gt.Equal(t, c.PressureCount(), 6)
}
