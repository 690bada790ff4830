package projection

import (
	"strings"

	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"
)

// CompanyRow is a vendor or client enriched with its rollups.
type CompanyRow struct {
	model.Company
	LeadSource         string       `json:"leadSource,omitempty"`
	LeadDate           string       `json:"leadDate,omitempty"`
	RollupProducts     []string     `json:"rollupProducts"`
	RollupPendingTasks []model.Task `json:"rollupPendingTasks"`
}

// CompanyFilter is the column filter state of the company list.
type CompanyFilter struct {
	Name       string   `form:"name"`
	Status     []string `form:"status"`
	Source     []string `form:"source"`
	Products   string   `form:"products"`
	Website    string   `form:"website"`
	Hot        TriState `form:"hot"`
	NextAction string   `form:"nextAction"`
	Date       string   `form:"date"`
}

// Companies enriches every vendor (kind vendor) or client (kind client).
func Companies(s *repository.Snapshot, kind model.Kind) []CompanyRow {
	var rows []CompanyRow
	enrich := func(c model.Company, source, date string) {
		rows = append(rows, CompanyRow{
			Company:            c,
			LeadSource:         source,
			LeadDate:           date,
			RollupProducts:     nonNil(relation.ProductNamesForCompany(s, kind, c.ID)),
			RollupPendingTasks: nonNil(relation.PendingTasksForCompany(s, c.ID)),
		})
	}
	switch kind {
	case model.KindVendor:
		for _, v := range s.Vendors {
			enrich(v.Company, "", "")
		}
	case model.KindClient:
		for _, c := range s.Clients {
			enrich(c.Company, c.LeadSource, c.LeadDate)
		}
	}
	return nonNil(rows)
}

// FilterCompanies applies the column filters. The lead source filter only
// applies to clients.
func FilterCompanies(rows []CompanyRow, kind model.Kind, f CompanyFilter) []CompanyRow {
	out := make([]CompanyRow, 0, len(rows))
	for _, r := range rows {
		if !Contains(r.CompanyName, f.Name) || !Member(f.Status, r.Status) {
			continue
		}
		if kind == model.KindClient && !Member(f.Source, r.LeadSource) {
			continue
		}
		if f.Products != "" && !anyContains(r.RollupProducts, f.Products) {
			continue
		}
		if f.Website != "" && (r.Website == "" || !Contains(r.Website, f.Website)) {
			continue
		}
		if !f.Hot.Match(r.Status == model.StatusHotLead) {
			continue
		}
		if f.NextAction != "" && !Contains(taskTitles(r.RollupPendingTasks), f.NextAction) {
			continue
		}
		if f.Date != "" && !Contains(r.dateText(), f.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortCompanies orders rows in place. rollupProducts sorts by the joined names,
// rollupPendingTasks by the earliest open due date; other keys by field value.
func SortCompanies(rows []CompanyRow, srt Sort) {
	srt = srt.Or("companyName", Asc)
	SortByKey(rows, srt.Dir, func(r CompanyRow) string {
		switch srt.Key {
		case "rollupProducts":
			return strings.Join(r.RollupProducts, ", ")
		case "rollupPendingTasks":
			if len(r.RollupPendingTasks) == 0 {
				return model.NoDueDate
			}
			return r.RollupPendingTasks[0].DueKey()
		case "createdAt":
			return epochKey(r.CreatedAt.Epoch())
		case "status":
			return r.Status
		case "leadDate":
			return r.LeadDate
		case "leadSource":
			return r.LeadSource
		case "website":
			return r.Website
		case "country":
			return r.Country
		default:
			return r.CompanyName
		}
	})
}

// BoardColumn is one status column of the company board.
type BoardColumn struct {
	Status string       `json:"status"`
	Items  []CompanyRow `json:"items"`
}

// CompanyBoard groups rows into one column per configured status. A company
// without a status belongs to "Active"; statuses not configured are not shown.
func CompanyBoard(rows []CompanyRow, statuses []string) []BoardColumn {
	cols := make([]BoardColumn, len(statuses))
	for i, st := range statuses {
		cols[i] = BoardColumn{Status: st, Items: []CompanyRow{}}
		for _, r := range rows {
			status := r.Status
			if status == "" {
				status = model.StatusActive
			}
			if status == st {
				cols[i].Items = append(cols[i].Items, r)
			}
		}
	}
	return cols
}

// StatusOptions returns the configured statuses for a company kind.
func StatusOptions(settings model.Settings, kind model.Kind) []string {
	if kind == model.KindVendor {
		return settings.List(model.SettingVendorStatuses)
	}
	return settings.List(model.SettingLeadStatuses)
}

func (r CompanyRow) dateText() string {
	if r.LeadDate != "" {
		return r.LeadDate
	}
	if r.CreatedAt.IsZero() {
		return ""
	}
	return calc.FormatDateWithYear(r.CreatedAt)
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if Contains(v, needle) {
			return true
		}
	}
	return false
}

func taskTitles(tasks []model.Task) string {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	return strings.Join(titles, " ")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
