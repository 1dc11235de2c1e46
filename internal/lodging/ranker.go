// Package lodging ranks lodging options by cost efficiency within each region.
package lodging

import (
	"sort"

	"viagens/internal/cache"
	"viagens/internal/core"
)

// MinRating is the lowest acceptable rating on the 0-10 scale.
const MinRating = 8.0

// Section is one region's ranked options, best first.
type Section struct {
	Region  core.Region          `json:"region"`
	Options []core.LodgingOption `json:"options"`
}

// Rank drops options rated below MinRating, groups the rest by region and
// orders each group ascending by price per night over rating. Equal ratios
// keep their catalog order. Regions left without options are absent from
// the result.
func Rank(options []core.LodgingOption) map[string][]core.LodgingOption {
	groups := make(map[string][]core.LodgingOption)
	for _, o := range options {
		if o.Rating < MinRating {
			continue
		}
		groups[o.RegionID] = append(groups[o.RegionID], o)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].CostEfficiency() < g[j].CostEfficiency()
		})
	}
	return groups
}

// Sections orders ranked groups by the region catalog. Ranked regions that
// are missing from the catalog are dropped.
func Sections(regions []core.Region, ranked map[string][]core.LodgingOption) []Section {
	out := make([]Section, 0, len(ranked))
	for _, r := range regions {
		opts, ok := ranked[r.ID]
		if !ok {
			continue
		}
		out = append(out, Section{Region: r, Options: opts})
	}
	return out
}

// Ranker memoizes Sections for an immutable catalog.
type Ranker struct {
	regions []core.Region
	options []core.LodgingOption
	cache   cache.Cache[[]Section]
}

const sectionsKey = "sections"

// NewRanker builds a ranker over a fixed catalog. A nil cache disables
// memoization.
func NewRanker(regions []core.Region, options []core.LodgingOption, c cache.Cache[[]Section]) *Ranker {
	return &Ranker{regions: regions, options: options, cache: c}
}

// Sections returns the ranked sections, computing them on a cache miss.
// Callers must not modify the returned slices.
func (r *Ranker) Sections() []Section {
	if r.cache != nil {
		if s, ok := r.cache.Get(sectionsKey); ok {
			return s
		}
	}
	s := Sections(r.regions, Rank(r.options))
	if r.cache != nil {
		r.cache.Set(sectionsKey, s)
	}
	return s
}
