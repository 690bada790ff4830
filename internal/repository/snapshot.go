package repository

import (
	"biowearth/internal/model"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

// Snapshot is an immutable typed view of every mirrored collection, in store
// order. Slices are shared between snapshots and must not be modified.
type Snapshot struct {
	Products       []model.Product
	SKUs           []model.SKU
	Vendors        []model.Vendor
	Clients        []model.Client
	Contacts       []model.Contact
	QuotesReceived []model.QuoteReceived
	QuotesSent     []model.QuoteSent
	Tasks          []model.Task
	Users          []model.UserProfile
	Orders         []model.Order
	Formulations   []model.Formulation
	RFQs           []model.RFQ
	ORS            []model.ORS
	Settings       model.Settings
}

type identified[T any] interface {
	*T
	SetID(string)
}

// decodeAll decodes every document, keeping records whose fields only partly
// match the typed shape.
func decodeAll[T any, P identified[T]](coll model.Collection, docs []store.Document) []T {
	out := make([]T, len(docs))
	for i, d := range docs {
		if err := d.Decode(&out[i]); err != nil {
			log.Debug().Err(err).Str("collection", string(coll)).Str("id", d.ID).Msg("repository: partial decode")
		}
		P(&out[i]).SetID(d.ID)
	}
	return out
}

func decodeSettings(docs []store.Document) model.Settings {
	s := make(model.Settings, len(docs))
	for _, d := range docs {
		var body struct {
			List []string `json:"list"`
		}
		if err := d.Decode(&body); err != nil {
			log.Debug().Err(err).Str("key", d.ID).Msg("repository: partial settings decode")
		}
		if body.List == nil {
			body.List = []string{}
		}
		s[d.ID] = body.List
	}
	return s
}

func decodeCollection(s *Snapshot, coll model.Collection, docs []store.Document) {
	switch coll {
	case model.CollProducts:
		s.Products = decodeAll[model.Product](coll, docs)
	case model.CollSKUs:
		s.SKUs = decodeAll[model.SKU](coll, docs)
	case model.CollVendors:
		s.Vendors = decodeAll[model.Vendor](coll, docs)
	case model.CollClients:
		s.Clients = decodeAll[model.Client](coll, docs)
	case model.CollContacts:
		s.Contacts = decodeAll[model.Contact](coll, docs)
	case model.CollQuotesReceived:
		s.QuotesReceived = decodeAll[model.QuoteReceived](coll, docs)
	case model.CollQuotesSent:
		s.QuotesSent = decodeAll[model.QuoteSent](coll, docs)
	case model.CollTasks:
		s.Tasks = decodeAll[model.Task](coll, docs)
	case model.CollUsers:
		s.Users = decodeAll[model.UserProfile](coll, docs)
	case model.CollOrders:
		s.Orders = decodeAll[model.Order](coll, docs)
	case model.CollFormulations:
		s.Formulations = decodeAll[model.Formulation](coll, docs)
	case model.CollRFQs:
		s.RFQs = decodeAll[model.RFQ](coll, docs)
	case model.CollORS:
		s.ORS = decodeAll[model.ORS](coll, docs)
	case model.CollSettings:
		s.Settings = decodeSettings(docs)
	}
}

func copyCollection(dst, src *Snapshot, coll model.Collection) {
	switch coll {
	case model.CollProducts:
		dst.Products = src.Products
	case model.CollSKUs:
		dst.SKUs = src.SKUs
	case model.CollVendors:
		dst.Vendors = src.Vendors
	case model.CollClients:
		dst.Clients = src.Clients
	case model.CollContacts:
		dst.Contacts = src.Contacts
	case model.CollQuotesReceived:
		dst.QuotesReceived = src.QuotesReceived
	case model.CollQuotesSent:
		dst.QuotesSent = src.QuotesSent
	case model.CollTasks:
		dst.Tasks = src.Tasks
	case model.CollUsers:
		dst.Users = src.Users
	case model.CollOrders:
		dst.Orders = src.Orders
	case model.CollFormulations:
		dst.Formulations = src.Formulations
	case model.CollRFQs:
		dst.RFQs = src.RFQs
	case model.CollORS:
		dst.ORS = src.ORS
	case model.CollSettings:
		dst.Settings = src.Settings
	}
}

// ── Lookups by id ────────────────────────────────────────────────────────────

func findByID[T model.Record](items []T, id string) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	for _, it := range items {
		if it.RecordID() == id {
			return it, true
		}
	}
	return zero, false
}

func (s *Snapshot) Product(id string) (model.Product, bool) { return findByID(s.Products, id) }
func (s *Snapshot) SKU(id string) (model.SKU, bool)         { return findByID(s.SKUs, id) }
func (s *Snapshot) Vendor(id string) (model.Vendor, bool)   { return findByID(s.Vendors, id) }
func (s *Snapshot) Client(id string) (model.Client, bool)   { return findByID(s.Clients, id) }
func (s *Snapshot) QuoteReceived(id string) (model.QuoteReceived, bool) {
	return findByID(s.QuotesReceived, id)
}
func (s *Snapshot) QuoteSent(id string) (model.QuoteSent, bool) { return findByID(s.QuotesSent, id) }
func (s *Snapshot) Task(id string) (model.Task, bool)           { return findByID(s.Tasks, id) }
func (s *Snapshot) User(id string) (model.UserProfile, bool)    { return findByID(s.Users, id) }
func (s *Snapshot) Order(id string) (model.Order, bool)         { return findByID(s.Orders, id) }
func (s *Snapshot) RFQ(id string) (model.RFQ, bool)             { return findByID(s.RFQs, id) }
func (s *Snapshot) ORSSheet(id string) (model.ORS, bool)        { return findByID(s.ORS, id) }
func (s *Snapshot) Formulation(id string) (model.Formulation, bool) {
	return findByID(s.Formulations, id)
}
