package model

import (
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Dataset is the full capability matrix as loaded at startup
type Dataset struct {
	Domains []*Domain `json:"domains" yaml:"domains"`
}

// Capabilities flattens the hierarchy into dataset order
func (d *Dataset) Capabilities() []*Capability {
	var result []*Capability
	for _, dom := range d.Domains {
		result = append(result, dom.Capabilities()...)
	}
	return result
}

// Clone returns a deep copy so callers can't mutate shared state
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{Domains: make([]*Domain, 0, len(d.Domains))}
	for _, dom := range d.Domains {
		domCopy := *dom
		domCopy.Areas = make([]*Area, 0, len(dom.Areas))
		for _, area := range dom.Areas {
			areaCopy := *area
			areaCopy.Capabilities = make([]*Capability, 0, len(area.Capabilities))
			for _, c := range area.Capabilities {
				areaCopy.Capabilities = append(areaCopy.Capabilities, c.Clone())
			}
			domCopy.Areas = append(domCopy.Areas, &areaCopy)
		}
		out.Domains = append(out.Domains, &domCopy)
	}
	return out
}

// FindCapability finds a leaf capability by its ID
func (d *Dataset) FindCapability(id types.CapabilityID) *Capability {
	for _, c := range d.Capabilities() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Validate validates the dataset: unique IDs, IDs nested under their
// parent, and every capability valid
func (d *Dataset) Validate() error {
	if len(d.Domains) == 0 {
		return goerr.New("at least one domain is required")
	}

	seen := make(map[types.CapabilityID]bool)
	checkID := func(id types.CapabilityID) error {
		if id == "" {
			return goerr.New("ID is required")
		}
		if seen[id] {
			return goerr.New("duplicate ID", goerr.V("id", id))
		}
		seen[id] = true
		return nil
	}

	for i, dom := range d.Domains {
		if err := checkID(dom.ID); err != nil {
			return goerr.Wrap(err, "invalid domain at index", goerr.V("index", i))
		}
		if err := validateMaturity(dom.MaturityLevel, dom.TargetMaturityLevel); err != nil {
			return goerr.Wrap(err, "invalid domain maturity", goerr.V("id", dom.ID))
		}

		for j, area := range dom.Areas {
			if err := checkID(area.ID); err != nil {
				return goerr.Wrap(err, "invalid area at index",
					goerr.V("domain", dom.ID),
					goerr.V("index", j))
			}
			if !area.ID.HasPrefix(dom.ID) {
				return goerr.New("area ID is not nested under its domain",
					goerr.V("domain", dom.ID),
					goerr.V("area", area.ID))
			}
			if err := validateMaturity(area.MaturityLevel, area.TargetMaturityLevel); err != nil {
				return goerr.Wrap(err, "invalid area maturity", goerr.V("id", area.ID))
			}

			for k, c := range area.Capabilities {
				if c == nil {
					return goerr.New("capability is nil",
						goerr.V("area", area.ID),
						goerr.V("index", k))
				}
				if err := checkID(c.ID); err != nil {
					return goerr.Wrap(err, "invalid capability at index",
						goerr.V("area", area.ID),
						goerr.V("index", k))
				}
				if !c.ID.HasPrefix(area.ID) {
					return goerr.New("capability ID is not nested under its area",
						goerr.V("area", area.ID),
						goerr.V("capability", c.ID))
				}
				if err := c.Validate(); err != nil {
					return goerr.Wrap(err, "invalid capability")
				}
			}
		}
	}

	return nil
}
