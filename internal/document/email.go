// Package document builds the text of generated documents: the RFQ email and
// the field/value content of RFQ and ORS sheets. Rendering to PDF lives in infra.
//
// Builders never fail: missing SKUs, products or formulations degrade field by
// field to placeholders.
package document

import (
	"fmt"
	"strings"

	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"

	"github.com/rs/zerolog/log"
)

// EmailPreviewError replaces the body when it cannot be generated.
const EmailPreviewError = "Error generating email preview. Please check item details."

const (
	customItem   = "Custom Item"
	tableRule    = "-------------------------------------------------------------"
	nameColWidth = 22
	typeColWidth = 11
)

// Email is a generated RFQ email, exposed for copy to the clipboard.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RFQEmail derives the subject and body for an RFQ. The RFQ may be an unsaved
// draft; without an order id the reference reads "Request".
func RFQEmail(s *repository.Snapshot, r model.RFQ) Email {
	ref := r.OrderID
	if ref == "" {
		ref = "Request"
	}
	return Email{
		Subject: fmt.Sprintf("RFQ %s: Quote for %s - Biowearth", ref, rfqItemName(s, r)),
		Body:    rfqBody(s, r),
	}
}

func rfqItemName(s *repository.Snapshot, r model.RFQ) (name string) {
	defer func() {
		if rec := recover(); rec != nil {
			name = "Item"
		}
	}()
	if r.EffectiveType() == model.RFQTypeSKU && r.LinkedID != "" {
		sku, ok := s.SKU(r.LinkedID)
		if !ok {
			return model.UnknownSKU
		}
		p, ok := relation.ProductForSKU(s, sku)
		if !ok {
			return model.UnknownProduct
		}
		return p.Name + " - " + sku.Variant
	}
	return or(r.CustomName, customItem)
}

func rfqBody(s *repository.Snapshot, r model.RFQ) (body string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("rfq", r.ID).Msg("document: rfq email body")
			body = EmailPreviewError
		}
	}()

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nI hope this email finds you well.\n\nWe are looking to procure the following item:\n",
		or(r.EmailToName, "Partner"))

	sku, skuOK := s.SKU(r.LinkedID)
	var product model.Product
	productOK := false
	if skuOK {
		product, productOK = relation.ProductForSKU(s, sku)
	}

	switch {
	case r.EffectiveType() == model.RFQTypeSKU && skuOK && productOK:
		fmt.Fprintf(&b, "\nProduct: %s", or(product.Name, "-"))
		fmt.Fprintf(&b, "\nFormat: %s", or(product.Format, "-"))
		fmt.Fprintf(&b, "\nVariant: %s", or(sku.Variant, "-"))
		fmt.Fprintf(&b, "\nFlavour: %s", or(sku.Flavour, "N/A"))
		fmt.Fprintf(&b, "\nPack Size: %s%s %s", sku.PackSize, sku.Unit, sku.PackType)

		if f, ok := relation.FormulationForSKU(s, r.LinkedID); ok {
			writeIngredientTable(&b, f.Ingredients)
			if len(f.Packaging) > 0 {
				b.WriteString("\n\nPACKAGING REQUIREMENTS:")
				for _, p := range f.Packaging {
					fmt.Fprintf(&b, "\n- %s: %s", or(p.Item, "Item"), or(p.Qty.String(), "-"))
				}
			}
		}
	case r.CustomDetails != "":
		fmt.Fprintf(&b, "\n\nItem: %s", r.CustomName)
		fmt.Fprintf(&b, "\nSpecifications:\n%s", r.CustomDetails)
	}

	fmt.Fprintf(&b, "\n\nQuantity: %s", or(r.Qty.String(), "TBD"))
	target := "Best feasible"
	if r.TargetPrice != "" {
		target = calc.FormatMoney(r.TargetPrice, r.Currency)
	}
	fmt.Fprintf(&b, "\nTarget Price: %s", target)
	b.WriteString("\n\nCould you please provide your best quote and lead time for this?")
	fmt.Fprintf(&b, "\n\nRFQ Ref: %s", shortRef(r.ID))
	b.WriteString("\n\nBest regards,")
	return b.String()
}

func writeIngredientTable(b *strings.Builder, ingredients []model.Ingredient) {
	if len(ingredients) == 0 {
		return
	}
	b.WriteString("\n\nFORMULATION / ACTIVE INGREDIENTS:")
	b.WriteString("\n" + tableRule)
	b.WriteString("\nIngredient Name       | Type       | Dosage")
	b.WriteString("\n" + tableRule)
	for _, ing := range ingredients {
		fmt.Fprintf(b, "\n%-*s| %-*s| %s",
			nameColWidth, ing.Name,
			typeColWidth, or(ing.Type, model.IngredientActive),
			calc.Dosage(ing))
	}
	b.WriteString("\n" + tableRule)
}

// shortRef is the first 8 characters of a document id, "New" for drafts.
func shortRef(id string) string {
	if id == "" {
		return "New"
	}
	if r := []rune(id); len(r) > 8 {
		return string(r[:8])
	}
	return id
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
