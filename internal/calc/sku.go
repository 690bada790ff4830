package calc

import (
	"regexp"
	"strings"

	"biowearth/internal/model"
)

// Fallbacks used when a SKU draft or the settings lists leave a part empty.
const (
	DefaultProductCode = "PROD"
	DefaultUnit        = "kg"
	DefaultPackType    = "Bag"
)

// SKUParts are the inputs of the generated SKU code.
type SKUParts struct {
	ProductName string
	Variant     string
	PackSize    string
	Unit        string
	PackType    string
	Flavour     string
}

var dashRun = regexp.MustCompile(`-+`)

// SKUCode builds PRODUCT-VARIANT-SIZEUNIT-PACKTYPE-FLAVOUR in upper case with runs
// of separators collapsed and one trailing separator trimmed. Empty product,
// unit and pack type fall back to the configured defaults.
func SKUCode(p SKUParts, settings model.Settings) string {
	product := p.ProductName
	if product == "" {
		product = DefaultProductCode
	}
	unit := p.Unit
	if unit == "" {
		unit = settings.First(model.SettingUnits, DefaultUnit)
	}
	packType := p.PackType
	if packType == "" {
		packType = settings.First(model.SettingPackTypes, DefaultPackType)
	}

	code := product + "-" + p.Variant + "-" + p.PackSize + unit + "-" + packType + "-" + p.Flavour
	code = dashRun.ReplaceAllString(strings.ToUpper(code), "-")
	return strings.TrimSuffix(code, "-")
}
