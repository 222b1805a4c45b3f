package service

import (
	"sort"

	"github.com/hexlab-tools/hexvalidate/domain"
)

// Summary is the aggregate view of a pipeline run used by the
// reporters
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`

	// Checks holds per-check finding groups for every result that
	// warned or failed, in result order
	Checks []CheckGroups `json:"checks,omitempty"`
}

// CheckGroups pairs a check with its grouped findings
type CheckGroups struct {
	Check  string         `json:"check"`
	Status domain.Status  `json:"status"`
	Groups []FindingGroup `json:"groups"`
}

// FindingGroup collapses findings that share a code
type FindingGroup struct {
	// Code is the shared <area>/<rule> identifier
	Code string `json:"code"`

	// Severity is the most severe member of the group
	Severity domain.Severity `json:"severity"`

	// Count is the total number of findings in the group
	Count int `json:"count"`

	// Files lists the affected files, sorted, empty string excluded
	Files []string `json:"files,omitempty"`

	// PerFile maps each affected file to its finding count
	PerFile map[string]int `json:"per_file,omitempty"`

	// Suggestion is the first non-empty suggestion seen in the group
	Suggestion string `json:"suggestion,omitempty"`

	// Findings keeps the individual members in input order
	Findings []domain.Finding `json:"messages"`
}

// Aggregate folds a result list into a Summary. It never mutates its
// input.
func Aggregate(results []*domain.CheckResult) *Summary {
	summary := &Summary{Total: len(results)}

	for _, result := range results {
		switch result.Status {
		case domain.StatusPass:
			summary.Passed++
		case domain.StatusWarn:
			summary.Warned++
		case domain.StatusFail:
			summary.Failed++
		case domain.StatusSkipped:
			summary.Skipped++
		}

		if result.Status != domain.StatusWarn && result.Status != domain.StatusFail {
			continue
		}
		summary.Checks = append(summary.Checks, CheckGroups{
			Check:  result.Name,
			Status: result.Status,
			Groups: groupFindings(result.Findings),
		})
	}

	return summary
}

// groupFindings buckets findings by code, ordering groups by severity
// rank then code and files lexicographically within a group
func groupFindings(findings []domain.Finding) []FindingGroup {
	byCode := map[string]*FindingGroup{}
	order := []string{}

	for _, f := range findings {
		group, ok := byCode[f.Code]
		if !ok {
			group = &FindingGroup{
				Code:     f.Code,
				Severity: f.Severity,
				PerFile:  map[string]int{},
			}
			byCode[f.Code] = group
			order = append(order, f.Code)
		}
		group.Count++
		group.Findings = append(group.Findings, f)
		if f.Severity.MoreSevere(group.Severity) {
			group.Severity = f.Severity
		}
		if group.Suggestion == "" {
			group.Suggestion = f.Suggestion
		}
		if f.File != "" {
			if _, seen := group.PerFile[f.File]; !seen {
				group.Files = append(group.Files, f.File)
			}
			group.PerFile[f.File]++
		}
	}

	groups := make([]FindingGroup, 0, len(order))
	for _, code := range order {
		group := byCode[code]
		sort.Strings(group.Files)
		if len(group.PerFile) == 0 {
			group.PerFile = nil
		}
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Severity != groups[j].Severity {
			return groups[i].Severity.MoreSevere(groups[j].Severity)
		}
		return groups[i].Code < groups[j].Code
	})

	return groups
}
