package projection_test

import (
	"testing"
	"time"

	"biowearth/internal/model"
	"biowearth/internal/projection"
	"biowearth/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func company(id, name, status string) model.Company {
	return model.Company{Meta: model.Meta{ID: id}, CompanyName: name, Status: status}
}

func fixture() *repository.Snapshot {
	return &repository.Snapshot{
		Products: []model.Product{
			{Meta: model.Meta{ID: "P1"}, Name: "whey", Format: "Powder"},
			{Meta: model.Meta{ID: "P2"}, Name: "Creatine", Format: "Powder"},
			{Meta: model.Meta{ID: "P3"}, Name: "Biotin", Format: "Gummy"},
		},
		SKUs: []model.SKU{
			{Meta: model.Meta{ID: "S1"}, ProductID: "P1", Variant: "Isolate", PackSize: "1", Unit: "kg", PackType: "Jar"},
			{Meta: model.Meta{ID: "S2"}, ProductID: "P2", Variant: "Mono", PackSize: "250", Unit: "g", PackType: "Pouch"},
		},
		Vendors: []model.Vendor{{Company: company("V1", "Acme Labs", "")}},
		Clients: []model.Client{
			{Company: company("C1", "FitStore", "Hot Lead"), LeadSource: "LinkedIn", LeadDate: "2024-02-01"},
			{Company: company("C2", "gymhub", "Lead"), LeadSource: "Referral"},
			{Company: company("C3", "Alpha Foods", ""), LeadSource: "Website"},
		},
		QuotesReceived: []model.QuoteReceived{
			{Meta: model.Meta{ID: "QR1"}, VendorID: "V1", SKUID: "S1", Price: "10", MOQ: "100"},
		},
		QuotesSent: []model.QuoteSent{
			{Meta: model.Meta{ID: "QS1"}, ClientID: "C1", SKUID: "S1", SellingPrice: "15", MOQ: "100", BaseCostID: "QR1", BaseCostPrice: "10", Status: "Active"},
			{Meta: model.Meta{ID: "QS2"}, ClientID: "C2", SKUID: "S2", SellingPrice: "9", MOQ: "10", Status: "Draft"},
		},
		Tasks: []model.Task{
			{Meta: model.Meta{ID: "T1"}, Title: "Send samples", RelatedID: "C1", DueDate: "2024-03-10", Priority: "High"},
			{Meta: model.Meta{ID: "T2"}, Title: "Follow up", RelatedClientID: "C2", DueDate: "2024-03-05", Priority: "Normal"},
			{Meta: model.Meta{ID: "T3"}, Title: "archive", Status: "Completed", RelatedID: "C3", DueDate: "2024-03-01"},
		},
		RFQs: []model.RFQ{
			{Meta: model.Meta{ID: "R1"}, LinkedID: "S1", CompanyID: "V1"},
			{Meta: model.Meta{ID: "R2"}, RFQType: "Other", CustomName: "Shaker", CompanyID: "C2"},
			{Meta: model.Meta{ID: "R3"}, LinkedID: "gone"},
		},
		ORS: []model.ORS{
			{Meta: model.Meta{ID: "O1"}, VendorID: "V1", ClientID: "C1", SKUID: "S1"},
			{Meta: model.Meta{ID: "O2"}, ClientID: "C2", SKUID: "gone"},
		},
		Formulations: []model.Formulation{
			{Meta: model.Meta{ID: "F1"}, SKUID: "S1", Ingredients: []model.Ingredient{{Per100g: "1.005"}, {Per100g: "2"}}},
		},
		Settings: model.Settings{model.SettingLeadStatuses: {"Lead", "Active", "Hot Lead"}},
	}
}

func names(rows []projection.CompanyRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.CompanyName
	}
	return out
}

// ── Primitives ───────────────────────────────────────────────────────────────

func TestFilterPrimitives(t *testing.T) {
	assert.True(t, projection.Contains("Acme Labs", "LAB"))
	assert.True(t, projection.Contains("", ""))
	assert.False(t, projection.Contains("", "x"))

	assert.True(t, projection.Member(nil, "anything"))
	assert.True(t, projection.Member([]string{"a", "b"}, "b"))
	assert.False(t, projection.Member([]string{"a"}, ""))

	assert.True(t, projection.TriAll.Match(false))
	assert.True(t, projection.TriState("").Match(true))
	assert.True(t, projection.TriYes.Match(true))
	assert.False(t, projection.TriYes.Match(false))
	assert.True(t, projection.TriNo.Match(false))
}

func TestSortByKey_StableLowerCaseMissingFirst(t *testing.T) {
	type item struct{ id, v string }
	items := []item{{"1", "beta"}, {"2", ""}, {"3", "Alpha"}, {"4", "alpha"}}
	projection.SortByKey(items, projection.Asc, func(i item) string { return i.v })
	assert.Equal(t, []item{{"2", ""}, {"3", "Alpha"}, {"4", "alpha"}, {"1", "beta"}}, items)

	projection.SortByKey(items, projection.Desc, func(i item) string { return i.v })
	assert.Equal(t, "1", items[0].id)
	assert.Equal(t, "2", items[3].id)
}

// ── Companies ────────────────────────────────────────────────────────────────

func TestCompanies_Rollups(t *testing.T) {
	rows := projection.Companies(fixture(), model.KindClient)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"whey"}, rows[0].RollupProducts)
	require.Len(t, rows[0].RollupPendingTasks, 1)
	assert.Empty(t, rows[2].RollupPendingTasks, "completed tasks are not rolled up")
	assert.NotNil(t, rows[2].RollupProducts)

	vendors := projection.Companies(fixture(), model.KindVendor)
	require.Len(t, vendors, 1)
	assert.Equal(t, []string{"whey"}, vendors[0].RollupProducts)
}

func TestFilterCompanies(t *testing.T) {
	rows := projection.Companies(fixture(), model.KindClient)

	assert.Equal(t, []string{"FitStore"}, names(projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Hot: projection.TriYes})))
	assert.Len(t, projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Hot: projection.TriNo}), 2)
	assert.Equal(t, []string{"gymhub"}, names(projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Source: []string{"Referral"}})))
	assert.Equal(t, []string{"gymhub"}, names(projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Products: "creat"})))
	assert.Equal(t, []string{"FitStore"}, names(projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{NextAction: "samples"})))
	assert.Equal(t, []string{"FitStore"}, names(projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Date: "2024-02"})))
	assert.Equal(t, []string{"Alpha Foods"}, names(projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Name: "alpha", Status: []string{""}})))
	assert.Empty(t, projection.FilterCompanies(rows, model.KindClient, projection.CompanyFilter{Website: "x"}))

	vendors := projection.Companies(fixture(), model.KindVendor)
	assert.Len(t, projection.FilterCompanies(vendors, model.KindVendor, projection.CompanyFilter{Source: []string{"Referral"}}), 1)
}

func TestSortCompanies(t *testing.T) {
	rows := projection.Companies(fixture(), model.KindClient)

	projection.SortCompanies(rows, projection.Sort{})
	assert.Equal(t, []string{"Alpha Foods", "FitStore", "gymhub"}, names(rows))

	projection.SortCompanies(rows, projection.Sort{Key: "rollupPendingTasks", Dir: projection.Asc})
	assert.Equal(t, []string{"gymhub", "FitStore", "Alpha Foods"}, names(rows))

	projection.SortCompanies(rows, projection.Sort{Key: "rollupProducts", Dir: projection.Desc})
	assert.Equal(t, []string{"FitStore", "gymhub", "Alpha Foods"}, names(rows))
}

func TestCompanyBoard(t *testing.T) {
	s := fixture()
	rows := projection.Companies(s, model.KindClient)
	cols := projection.CompanyBoard(rows, projection.StatusOptions(s.Settings, model.KindClient))
	require.Len(t, cols, 3)
	assert.Equal(t, []string{"gymhub"}, names(cols[0].Items))
	assert.Equal(t, []string{"Alpha Foods"}, names(cols[1].Items), "missing status counts as Active")
	assert.Equal(t, []string{"FitStore"}, names(cols[2].Items))
}

func TestDetail(t *testing.T) {
	d, ok := projection.Detail(fixture(), model.KindClient, "C1")
	require.True(t, ok)
	assert.Equal(t, "FitStore", d.Company.CompanyName)
	assert.Equal(t, "LinkedIn", d.LeadSource)
	require.Len(t, d.SalesQuotes, 1)
	assert.Nil(t, d.PurchaseQuotes)
	assert.True(t, d.Value.Orders.IsZero())
	assert.Equal(t, "1500", d.Value.Potential.String())

	_, ok = projection.Detail(fixture(), model.KindVendor, "C1")
	assert.False(t, ok)
}

// ── Products, quotes, formulations ───────────────────────────────────────────

func TestProducts(t *testing.T) {
	s := fixture()
	rows := projection.Products(s, projection.ProductFilter{Format: "All"}, projection.Sort{})
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Biotin", "Creatine", "whey"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	assert.Equal(t, 1, rows[2].ActiveQuotesCount)
	require.Len(t, rows[2].Suppliers, 1)
	assert.Equal(t, []string{"C1"}, rows[2].ClientIDs)

	gummies := projection.Products(s, projection.ProductFilter{Format: "Gummy"}, projection.Sort{})
	require.Len(t, gummies, 1)

	searched := projection.Products(s, projection.ProductFilter{Search: "WHE"}, projection.Sort{Key: "format", Dir: projection.Desc})
	require.Len(t, searched, 1)

	active := projection.ActiveQuotes(s, "P1")
	require.Len(t, active, 1)
	assert.Equal(t, "FitStore", active[0].ClientName)
	assert.Equal(t, "50.00", active[0].Margin.Percent.StringFixed(2))
}

func TestQuotes(t *testing.T) {
	s := fixture()
	purchase := projection.PurchaseQuotes(s)
	require.Len(t, purchase, 1)
	row := purchase[0].Quotes[0]
	assert.Equal(t, "Acme Labs", row.VendorName)
	assert.Equal(t, "Active", row.Status)
	assert.Equal(t, "QS1", row.LinkedSaleID)

	sales := projection.SalesQuotes(s)
	require.Len(t, sales, 2)
	assert.Equal(t, "Acme Labs", sales[0].Quotes[0].BaseVendorName)
	assert.Empty(t, sales[1].Quotes[0].BaseVendorName)
}

func TestFormulations(t *testing.T) {
	rows := projection.Formulations(fixture(), "")
	require.Len(t, rows, 1)
	assert.Equal(t, "whey - Isolate", rows[0].SKULabel)
	assert.Equal(t, "3.01", rows[0].Totals.Per100g)
	assert.Empty(t, projection.Formulations(fixture(), "creatine"))
}

// ── Tasks ────────────────────────────────────────────────────────────────────

func TestTasks(t *testing.T) {
	s := fixture()
	all := projection.Tasks(s.Tasks, projection.TaskFilter{Priority: "All"}, projection.Sort{})
	assert.Equal(t, []string{"T3", "T2", "T1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	high := projection.Tasks(s.Tasks, projection.TaskFilter{Priority: "High"}, projection.Sort{})
	require.Len(t, high, 1)
	assert.Equal(t, "T1", high[0].ID)

	byTitle := projection.Tasks(s.Tasks, projection.TaskFilter{}, projection.Sort{Key: "title", Dir: projection.Asc})
	assert.Equal(t, "archive", byTitle[0].Title)

	assert.Len(t, projection.Tasks(s.Tasks, projection.TaskFilter{Search: "FOLLOW"}, projection.Sort{}), 1)
}

func TestCalendar(t *testing.T) {
	s := fixture()
	month := projection.MonthCalendar(s.Tasks, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	// 1 March 2024 is a Friday: five blank cells, then 31 days.
	require.Len(t, month, 36)
	assert.Empty(t, month[4].Date)
	assert.Equal(t, "2024-03-01", month[5].Date)
	assert.Len(t, month[5].Tasks, 1)
	assert.Equal(t, "2024-03-10", month[14].Date)
	assert.Len(t, month[14].Tasks, 1)

	week := projection.WeekCalendar(s.Tasks, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))
	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-03", week[0].Date)
	assert.Equal(t, "2024-03-09", week[6].Date)
	assert.Len(t, week[2].Tasks, 1)
}

// ── Documents ────────────────────────────────────────────────────────────────

func TestRFQs(t *testing.T) {
	s := fixture()
	rows := projection.RFQs(s, "")
	require.Len(t, rows, 3)
	assert.Equal(t, "whey (Isolate)", rows[0].Title)
	assert.Equal(t, "1 kg Jar", rows[0].Subtitle)
	assert.Equal(t, "Acme Labs", rows[0].CompanyName)
	assert.Equal(t, "Shaker", rows[1].Title)
	assert.Equal(t, "-", rows[1].Subtitle)
	assert.Equal(t, "Unknown Product", rows[2].Title)
	assert.Equal(t, "Unknown Vendor", rows[2].CompanyName)

	assert.Len(t, projection.RFQs(s, "gym"), 1)
	assert.Len(t, projection.RFQs(s, "WHEY"), 1)
}

func TestORSList(t *testing.T) {
	s := fixture()
	rows := projection.ORSList(s, "")
	require.Len(t, rows, 2)
	assert.Equal(t, "whey - Isolate (1kg)", rows[0].SKUDetails)
	assert.Equal(t, "Unknown Vendor", rows[1].VendorName)
	assert.Equal(t, "Unknown Item", rows[1].SKUDetails)

	assert.Len(t, projection.ORSList(s, "fitstore"), 1)
	assert.Len(t, projection.ORSList(s, "unknown"), 1)
}
