package model

// Kind tags the record type a form or API call edits. Every Kind maps to exactly
// one Collection; the table below is the only place that mapping lives.
type Kind string

const (
	KindProduct       Kind = "product"
	KindSKU           Kind = "sku"
	KindVendor        Kind = "vendor"
	KindClient        Kind = "client"
	KindContact       Kind = "contact"
	KindQuoteReceived Kind = "quoteReceived"
	KindQuoteSent     Kind = "quoteSent"
	KindTask          Kind = "task"
	KindUser          Kind = "user"
	KindOrder         Kind = "order"
	KindFormulation   Kind = "formulation"
	KindRFQ           Kind = "rfq"
	KindORS           Kind = "ors"
)

// Collection is the name of a document collection in the store.
type Collection string

const (
	CollProducts       Collection = "products"
	CollSKUs           Collection = "skus"
	CollVendors        Collection = "vendors"
	CollClients        Collection = "clients"
	CollContacts       Collection = "contacts"
	CollQuotesReceived Collection = "quotesReceived"
	CollQuotesSent     Collection = "quotesSent"
	CollTasks          Collection = "tasks"
	CollUsers          Collection = "users"
	CollOrders         Collection = "orders"
	CollFormulations   Collection = "formulations"
	CollRFQs           Collection = "rfqs"
	CollORS            Collection = "ors"
	CollSettings       Collection = "settings"
)

var collectionByKind = map[Kind]Collection{
	KindProduct:       CollProducts,
	KindSKU:           CollSKUs,
	KindVendor:        CollVendors,
	KindClient:        CollClients,
	KindContact:       CollContacts,
	KindQuoteReceived: CollQuotesReceived,
	KindQuoteSent:     CollQuotesSent,
	KindTask:          CollTasks,
	KindUser:          CollUsers,
	KindOrder:         CollOrders,
	KindFormulation:   CollFormulations,
	KindRFQ:           CollRFQs,
	KindORS:           CollORS,
}

// Collection returns the collection a kind is stored in.
func (k Kind) Collection() (Collection, bool) {
	c, ok := collectionByKind[k]
	return c, ok
}

// Valid reports whether k is one of the known record kinds.
func (k Kind) Valid() bool {
	_, ok := collectionByKind[k]
	return ok
}

// Collections lists every collection the application mirrors, settings included.
func Collections() []Collection {
	return []Collection{
		CollProducts, CollSKUs, CollVendors, CollClients, CollContacts,
		CollQuotesReceived, CollQuotesSent, CollTasks, CollUsers, CollOrders,
		CollFormulations, CollRFQs, CollORS, CollSettings,
	}
}
