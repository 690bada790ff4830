package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"

	"github.com/gosimple/slug"
)

// Document types, used as the first segment of export file names.
const (
	TypeRFQ = "RFQ"
	TypeORS = "ORS"
)

const notLinked = "None / Not Linked"

var (
	ErrUnknownType    = errors.New("unknown document type")
	ErrSourceNotFound = errors.New("document source record not found")
	// ErrNoSheets is returned for an ORS whose recipient type names no recipient.
	ErrNoSheets = errors.New("document has no recipient to build a sheet for")
)

// Sheets builds the sheets of one record: docType is "rfq" or "ors" and id the
// record it is generated from.
func Sheets(s *repository.Snapshot, docType, id string) ([]Sheet, error) {
	switch strings.ToUpper(docType) {
	case TypeRFQ:
		r, ok := s.RFQ(id)
		if !ok {
			return nil, ErrSourceNotFound
		}
		return []Sheet{RFQSheet(s, r)}, nil
	case TypeORS:
		o, ok := s.ORSSheet(id)
		if !ok {
			return nil, ErrSourceNotFound
		}
		sheets := ORSSheets(s, o)
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		return sheets, nil
	default:
		return nil, ErrUnknownType
	}
}

// Row is one line of a sheet's field/value table.
type Row struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// IngredientRow is one line of the formulation table.
type IngredientRow struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Per100g    string `json:"per100g"`
	PerServing string `json:"perServing"`
	PerUnit    string `json:"perUnit"`
}

// Sheet is the complete, render-ready content of one RFQ or ORS document.
type Sheet struct {
	Type         string          `json:"type"`
	Title        string          `json:"title"`
	Date         string          `json:"date"`
	PartyLabel   string          `json:"partyLabel"`
	PartyName    string          `json:"partyName"`
	Rows         []Row           `json:"rows"`
	Ingredients  []IngredientRow `json:"ingredients"`
	RequiredDocs []string        `json:"requiredDocs"`
	FileName     string          `json:"fileName"`
}

// IngredientHeader is the heading row of the formulation table.
var IngredientHeader = []string{"Ingredient", "Type", "Qty / 100g", "Qty / Serving", "Qty / Unit"}

// ── RFQ ──────────────────────────────────────────────────────────────────────

// RFQSheet builds the request-for-quotation document of an RFQ.
func RFQSheet(s *repository.Snapshot, r model.RFQ) Sheet {
	party, ok := relation.CompanyName(s, r.CompanyID)
	if !ok {
		party = model.UnknownVendor
	}
	date := calc.FormatDateWithYear(r.CreatedAt)

	sh := Sheet{
		Type:         TypeRFQ,
		Title:        "Request for Quotation (RFQ)",
		Date:         date,
		PartyLabel:   "Vendor",
		PartyName:    party,
		Ingredients:  []IngredientRow{},
		RequiredDocs: []string{},
	}

	qty := fmt.Sprintf("%s units", or(r.Qty.String(), "0"))
	target := "N/A"
	if r.TargetPrice != "" {
		target = or(r.Currency, model.DefaultCurrency) + " " + r.TargetPrice.String()
	}
	country := or(r.CountryOfSale, "-")

	if r.EffectiveType() == model.RFQTypeOther {
		sh.Rows = []Row{
			{"Request Type", "Custom Item"},
			{"Product Name", or(r.CustomName, "-")},
			{"Description", or(r.CustomDetails, "-")},
			{"Quantity", qty},
			{"Target Price", target},
			{"Country of Sale", country},
		}
	} else {
		sku, skuOK := s.SKU(r.LinkedID)
		product, _ := relation.ProductForSKU(s, sku)
		f, _ := relation.FormulationForSKU(s, sku.ID)
		sh.Rows = []Row{
			{"Request Type", "Standard SKU"},
			{"Product", or(product.Name, "-")},
			{"Variant", or(sku.Variant, "-")},
			{"Pack Details", packDetails(sku, skuOK)},
			{"Packing Materials", packingMaterials(f.Packaging)},
			{"Quantity", qty},
			{"Target Price", target},
			{"Country of Sale", country},
		}
		sh.Ingredients = ingredientRows(f.Ingredients)
	}

	partySlug := "vendor"
	if ok {
		partySlug = or(slug.Make(party), partySlug)
	}
	sh.FileName = FileName(TypeRFQ, date, partySlug)
	return sh
}

// ── ORS ──────────────────────────────────────────────────────────────────────

// ORSSheets builds one OEM request sheet per recipient: the vendor, the client,
// or both. An unknown recipient type yields none.
func ORSSheets(s *repository.Snapshot, o model.ORS) []Sheet {
	var out []Sheet
	for _, recipient := range o.Recipients() {
		name := relation.VendorName(s, o.VendorID)
		if recipient == model.RecipientClient {
			name = relation.ClientName(s, o.ClientID)
		}
		out = append(out, orsSheet(s, o, recipient, name))
	}
	return out
}

func orsSheet(s *repository.Snapshot, o model.ORS, recipient, name string) Sheet {
	sku, skuOK := s.SKU(o.SKUID)
	product, _ := relation.ProductForSKU(s, sku)
	f, _ := relation.FormulationForSKU(s, sku.ID)
	date := calc.FormatDateWithYear(o.Date)

	return Sheet{
		Type:       TypeORS,
		Title:      "OEM Request Sheet (ORS)",
		Date:       date,
		PartyLabel: "To",
		PartyName:  name,
		Rows: []Row{
			{"Product", or(product.Name, "-")},
			{"Variant", or(sku.Variant, "-")},
			{"Flavour", or(sku.Flavour, "-")},
			{"Pack Details", packDetails(sku, skuOK)},
			{"Packing Materials", packingMaterials(f.Packaging)},
			{"Quantity", or(o.Qty.String(), "0") + " units"},
			{"Price Terms", or(o.PriceTerms, "-")},
			{"Country of Sale", or(o.CountryOfSale, "-")},
			{"Lead Time", or(o.LeadTime.String(), "0") + " weeks"},
			{"Shelf Life", or(o.ShelfLife.String(), "0") + " months"},
		},
		Ingredients:  ingredientRows(f.Ingredients),
		RequiredDocs: requiredDocs(o.RequiredDocs),
		FileName:     FileName(TypeORS, date, recipient),
	}
}

// ── Shared pieces ────────────────────────────────────────────────────────────

// FileName joins a document type, a date and a party into "RFQ_05-Mar-2024_acme.pdf".
func FileName(docType, date, party string) string {
	return fmt.Sprintf("%s_%s_%s.pdf", docType, date, party)
}

func packDetails(sku model.SKU, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%s %s (%s)", sku.PackSize, sku.Unit, sku.PackType)
}

func packingMaterials(items []model.PackagingItem) string {
	if len(items) == 0 {
		return notLinked
	}
	parts := make([]string, len(items))
	for i, p := range items {
		parts[i] = fmt.Sprintf("%s (%s)", p.Item, p.Qty)
	}
	return strings.Join(parts, ", ")
}

func ingredientRows(ingredients []model.Ingredient) []IngredientRow {
	rows := make([]IngredientRow, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = IngredientRow{
			Name:       ing.Name,
			Type:       or(ing.Type, model.IngredientActive),
			Per100g:    or(ing.Per100g.String(), "-"),
			PerServing: or(ing.PerServing.String(), "-"),
			PerUnit:    or(ing.PerSku.String(), "-"),
		}
	}
	return rows
}

// requiredDocs lists the documents marked required: the standard checklist
// first in its usual order, then any other names alphabetically.
func requiredDocs(marked map[string]bool) []string {
	out := []string{}
	known := make(map[string]bool, len(model.RequiredDocs))
	for _, name := range model.RequiredDocs {
		known[name] = true
		if marked[name] {
			out = append(out, name)
		}
	}
	var extra []string
	for name, required := range marked {
		if required && !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
