// Package relation computes one-hop joins and rollups across collections.
//
// Every function reads a *repository.Snapshot and returns freshly computed
// values; nothing is cached between calls. A dangling reference never panics
// and never removes the referencing record: it degrades to a placeholder label.
package relation

import (
	"fmt"

	"biowearth/internal/model"
	"biowearth/internal/repository"
)

// ── SKU and product ──────────────────────────────────────────────────────────

// SKUsForProduct returns the SKUs of a product in store order.
func SKUsForProduct(s *repository.Snapshot, productID string) []model.SKU {
	var out []model.SKU
	for _, sku := range s.SKUs {
		if sku.ProductID == productID {
			out = append(out, sku)
		}
	}
	return out
}

// ProductForSKU resolves the product a SKU belongs to.
func ProductForSKU(s *repository.Snapshot, sku model.SKU) (model.Product, bool) {
	return s.Product(sku.ProductID)
}

// ProductName is the product name of a SKU, "Unknown Product" when missing.
func ProductName(s *repository.Snapshot, sku model.SKU) string {
	if p, ok := ProductForSKU(s, sku); ok {
		return p.Name
	}
	return model.UnknownProduct
}

// SKULabel renders "Product - Variant" for a SKU id, "Unknown SKU" when the
// SKU is gone.
func SKULabel(s *repository.Snapshot, skuID string) string {
	sku, ok := s.SKU(skuID)
	if !ok {
		return model.UnknownSKU
	}
	return ProductName(s, sku) + " - " + sku.Variant
}

// SKUDetails renders "Product - Variant (1kg)", "Unknown Item" when either the
// SKU or its product is missing.
func SKUDetails(s *repository.Snapshot, skuID string) string {
	sku, ok := s.SKU(skuID)
	if !ok {
		return model.UnknownItem
	}
	p, ok := ProductForSKU(s, sku)
	if !ok {
		return model.UnknownItem
	}
	return fmt.Sprintf("%s - %s (%s%s)", p.Name, sku.Variant, sku.PackSize, sku.Unit)
}

// ── Companies ────────────────────────────────────────────────────────────────

// VendorName returns the vendor's company name or "Unknown Vendor".
func VendorName(s *repository.Snapshot, id string) string {
	if v, ok := s.Vendor(id); ok {
		return v.CompanyName
	}
	return model.UnknownVendor
}

// ClientName returns the client's company name or "Unknown Client".
func ClientName(s *repository.Snapshot, id string) string {
	if c, ok := s.Client(id); ok {
		return c.CompanyName
	}
	return model.UnknownClient
}

// CompanyName looks the id up among vendors first, then clients.
func CompanyName(s *repository.Snapshot, id string) (string, bool) {
	if v, ok := s.Vendor(id); ok {
		return v.CompanyName, true
	}
	if c, ok := s.Client(id); ok {
		return c.CompanyName, true
	}
	return "", false
}

// Company resolves a vendor or client by kind.
func Company(s *repository.Snapshot, kind model.Kind, id string) (model.Company, bool) {
	switch kind {
	case model.KindVendor:
		if v, ok := s.Vendor(id); ok {
			return v.Company, true
		}
	case model.KindClient:
		if c, ok := s.Client(id); ok {
			return c.Company, true
		}
	}
	return model.Company{}, false
}

// ContactsForCompany returns the contacts attached to a vendor or client.
func ContactsForCompany(s *repository.Snapshot, companyID string) []model.Contact {
	var out []model.Contact
	for _, c := range s.Contacts {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out
}

// FormulationForSKU returns the first formulation pointing at the SKU.
func FormulationForSKU(s *repository.Snapshot, skuID string) (model.Formulation, bool) {
	if skuID == "" {
		return model.Formulation{}, false
	}
	for _, f := range s.Formulations {
		if f.SKUID == skuID {
			return f, true
		}
	}
	return model.Formulation{}, false
}
