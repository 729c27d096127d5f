package overlay

import (
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// Cell is one capability tile of the matrix
type Cell struct {
	ID                  types.CapabilityID `json:"id"`
	Name                string             `json:"name"`
	Mode                types.Mode         `json:"mode"`
	Year                int                `json:"year"`
	Quarter             types.Quarter      `json:"quarter"`
	MaturityLevel       int                `json:"maturityLevel"`
	TargetMaturityLevel int                `json:"targetMaturityLevel"`
	StatusLabel         string             `json:"statusLabel"`
	StatusColor         string             `json:"statusColor"`
	Color               string             `json:"color"`
	Annotation          string             `json:"annotation,omitempty"`
	Dimmed              bool               `json:"dimmed"`
}

// AreaView is an L2 column with its capabilities
type AreaView struct {
	ID                  types.CapabilityID `json:"id"`
	Name                string             `json:"name"`
	MaturityLevel       int                `json:"maturityLevel"`
	TargetMaturityLevel int                `json:"targetMaturityLevel"`
	Rollup              Rollup             `json:"rollup"`
	Capabilities        []*Cell            `json:"capabilities"`
}

// DomainView is an L1 row with its areas
type DomainView struct {
	ID                  types.CapabilityID `json:"id"`
	Name                string             `json:"name"`
	MaturityLevel       int                `json:"maturityLevel"`
	TargetMaturityLevel int                `json:"targetMaturityLevel"`
	Rollup              Rollup             `json:"rollup"`
	Areas               []*AreaView        `json:"areas"`
}

// MatrixView is the complete matrix rendered for one overlay and filter
type MatrixView struct {
	Overlay Info                  `json:"overlay"`
	Filter  model.Filter          `json:"filter"`
	Domains []*DomainView         `json:"domains"`
	Insight *model.InsightSummary `json:"insight"`
}

// BuildView evaluates the overlay over the whole dataset. Dimmed capabilities
// are still listed but excluded from rollups and from the insight summary.
func BuildView(ds *model.Dataset, filter model.Filter, kind types.OverlayKind) *MatrixView {
	view := &MatrixView{
		Overlay: Describe(kind),
		Filter:  filter,
		Domains: make([]*DomainView, 0, len(ds.Domains)),
	}

	for _, dom := range ds.Domains {
		dv := &DomainView{
			ID:                  dom.ID,
			Name:                dom.Name,
			MaturityLevel:       dom.MaturityLevel,
			TargetMaturityLevel: dom.TargetMaturityLevel,
			Rollup:              RollupStatus(dom.Capabilities(), filter),
			Areas:               make([]*AreaView, 0, len(dom.Areas)),
		}

		for _, area := range dom.Areas {
			av := &AreaView{
				ID:                  area.ID,
				Name:                area.Name,
				MaturityLevel:       area.MaturityLevel,
				TargetMaturityLevel: area.TargetMaturityLevel,
				Rollup:              RollupStatus(area.Capabilities, filter),
				Capabilities:        make([]*Cell, 0, len(area.Capabilities)),
			}
			for _, c := range area.Capabilities {
				av.Capabilities = append(av.Capabilities, newCell(c, filter, kind))
			}
			dv.Areas = append(dv.Areas, av)
		}

		view.Domains = append(view.Domains, dv)
	}

	view.Insight = Summarize(kind, filter.Apply(ds.Capabilities()))
	return view
}

func newCell(c *model.Capability, filter model.Filter, kind types.OverlayKind) *Cell {
	cell := &Cell{
		ID:                  c.ID,
		Name:                c.Name,
		Mode:                c.Mode,
		Year:                c.Year,
		Quarter:             c.Quarter,
		MaturityLevel:       c.MaturityLevel,
		TargetMaturityLevel: c.TargetMaturityLevel,
		StatusLabel:         StatusLabel(c),
		StatusColor:         StatusColor(c),
		Color:               Color(c, kind),
		Dimmed:              filter.IsDimmed(c),
	}
	if a, ok := Annotation(c, kind); ok {
		cell.Annotation = a
	}
	return cell
}
