package model

// Product is a catalogue entry; its sellable variants are SKUs.
type Product struct {
	Meta
	Name      string `json:"name"`
	Format    string `json:"format"`
	DriveLink string `json:"driveLink,omitempty"`
}

// SKU is one pack/flavour/size variant of a Product.
// Name is the generated code (e.g. WHEY-ISOLATE-1KG-JAR-CHOCOLATE), frozen after creation.
type SKU struct {
	Meta
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Variant     string `json:"variant"`
	Flavour     string `json:"flavour"`
	PackSize    Scalar `json:"packSize"`
	Unit        string `json:"unit"`
	PackType    string `json:"packType"`
	StandardMOQ Scalar `json:"standardMoq"`
	Name        string `json:"name"`
}
