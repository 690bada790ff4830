package model

const (
	IngredientActive = "Active"
	IngredientOther  = "Other"
)

// Ingredient is one row of a formulation. Dosages are free text as typed.
type Ingredient struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Per100g    Scalar `json:"per100g"`
	PerServing Scalar `json:"perServing"`
	PerSku     Scalar `json:"perSku"`
}

// PackagingItem is one line of the packaging bill of materials.
type PackagingItem struct {
	Item string `json:"item"`
	Qty  Scalar `json:"qty"`
}

// Formulation is the recipe and packaging BOM of one SKU. Several formulations may
// point at the same SKU; lookups take the first.
type Formulation struct {
	Meta
	SKUID       string          `json:"skuId"`
	ServingSize Scalar          `json:"servingSize"`
	BatchSize   Scalar          `json:"batchSize"`
	Ingredients []Ingredient    `json:"ingredients"`
	Packaging   []PackagingItem `json:"packaging"`
}
