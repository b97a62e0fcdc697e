package domain

import "sort"

// Skill is one entry of a job-market analysis. Importance is a
// relevance score the model assigns on a 1-100 scale.
type Skill struct {
	Name       string `json:"name"`
	Importance int    `json:"importance"`
}

// InsightResult is the structured payload extracted from a job-market
// analysis response. Salary and demand stay free-form strings; the
// model labels them however it likes ("$95,000 USD", "Growing by 15%").
type InsightResult struct {
	AverageSalary string  `json:"averageSalary"`
	Demand        string  `json:"demand"`
	TopSkills     []Skill `json:"topSkills"`
}

// Validate checks the shape contract: every required field present and
// every importance inside [1,100]. Out-of-range values are rejected,
// never clamped.
func (r *InsightResult) Validate() error {
	if r.AverageSalary == "" {
		return NewMalformedInsight("missing averageSalary")
	}
	if r.Demand == "" {
		return NewMalformedInsight("missing demand")
	}
	if len(r.TopSkills) == 0 {
		return NewMalformedInsight("topSkills is empty")
	}
	for _, s := range r.TopSkills {
		if s.Name == "" {
			return NewMalformedInsight("skill with empty name")
		}
		if s.Importance < 1 || s.Importance > 100 {
			return NewMalformedInsight("skill importance out of range [1,100]")
		}
	}
	return nil
}

// SortSkills orders TopSkills descending by importance. The sort is
// stable so ties keep the model's original order.
func (r *InsightResult) SortSkills() {
	sort.SliceStable(r.TopSkills, func(i, j int) bool {
		return r.TopSkills[i].Importance > r.TopSkills[j].Importance
	})
}
