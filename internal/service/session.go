package service

import (
	"fmt"
	"sort"

	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"
	"biowearth/internal/store"
)

// Mode says whether a session creates a record or edits an existing one.
type Mode string

const (
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
)

// State of an edit session. Closed sessions reject every mutation.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Session is one open form: a draft of a single record plus the derived fields
// recomputed whenever their inputs change. It is not safe for concurrent use.
type Session struct {
	kind  model.Kind
	coll  model.Collection
	mode  Mode
	id    string
	draft store.Fields
	state State
	err   error
	snap  func() *repository.Snapshot
}

func (s *Session) Kind() model.Kind { return s.kind }
func (s *Session) Mode() Mode       { return s.mode }
func (s *Session) ID() string       { return s.id }
func (s *Session) State() State     { return s.state }

// Err is the last validation error of Submit, nil otherwise.
func (s *Session) Err() error { return s.err }

// Draft returns a copy of the current draft.
func (s *Session) Draft() store.Fields { return s.draft.Clone() }

// Get returns one draft field.
func (s *Session) Get(field string) any { return s.draft[field] }

// Cancel closes the session and discards the draft.
func (s *Session) Cancel() {
	s.state = StateClosed
	s.draft = store.Fields{}
	s.err = nil
}

// Set writes one field and recomputes whatever depends on it. Writing the value a
// field already holds changes nothing. The reserved id and createdAt fields and
// the derived fields of the kind are ignored.
func (s *Session) Set(field string, value any) error {
	if s.state != StateOpen {
		return ErrSessionClosed
	}
	if field == store.FieldID || field == store.FieldCreatedAt || s.derived(field) {
		return nil
	}
	if current, ok := s.draft[field]; ok && sameValue(current, value) {
		return nil
	}
	s.draft[field] = value
	s.react(field)
	return nil
}

// drivingFields are applied first by SetAll because setting them resets or fills
// other fields.
var drivingFields = []string{"contextType", "productId", "companyId", "skuId", "relatedId", "baseCostId"}

// SetAll applies a batch of field edits: driving fields first, then the rest in
// key order.
func (s *Session) SetAll(fields store.Fields) error {
	seen := make(map[string]bool, len(fields))
	for _, k := range drivingFields {
		if v, ok := fields[k]; ok {
			seen[k] = true
			if err := s.Set(k, v); err != nil {
				return err
			}
		}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}

// derived reports whether field is computed from other fields and never taken
// from the caller: order totals and the SKU code.
func (s *Session) derived(field string) bool {
	switch s.kind {
	case model.KindOrder:
		return field == "amount" || field == "taxAmount"
	case model.KindSKU:
		return field == "name"
	}
	return false
}

func (s *Session) react(field string) {
	switch s.kind {
	case model.KindOrder:
		switch field {
		case "qty", "rate", "taxRate":
			s.recomputeOrder()
		}
	case model.KindSKU:
		switch field {
		case "productId":
			s.resolveProductName()
			s.recomputeSKUName()
		case "productName", "variant", "packSize", "unit", "packType", "flavour":
			s.recomputeSKUName()
		}
	case model.KindTask:
		switch field {
		case "contextType":
			s.draft["relatedId"] = nil
			s.draft["relatedName"] = nil
		case "relatedId":
			s.resolveRelatedName()
		}
	case model.KindQuoteSent:
		if field == "baseCostId" {
			if q, ok := s.snap().QuoteReceived(s.draft.String("baseCostId")); ok {
				s.draft["baseCostPrice"] = q.Price.Decimal().InexactFloat64()
			}
		}
	}
}

func (s *Session) recomputeOrder() {
	t := calc.OrderTotals(s.draft["qty"], s.draft["rate"], s.draft["taxRate"])
	s.draft["amount"] = t.Amount.InexactFloat64()
	s.draft["taxAmount"] = t.TaxAmount.InexactFloat64()
}

// recomputeSKUName regenerates the code while the SKU is new; edits keep the stored name.
func (s *Session) recomputeSKUName() {
	if s.mode != ModeNew {
		return
	}
	s.draft["name"] = calc.SKUCode(calc.SKUParts{
		ProductName: s.draft.String("productName"),
		Variant:     s.draft.String("variant"),
		PackSize:    fmt.Sprint(valueOr(s.draft["packSize"], "")),
		Unit:        s.draft.String("unit"),
		PackType:    s.draft.String("packType"),
		Flavour:     s.draft.String("flavour"),
	}, s.snap().Settings)
}

func (s *Session) resolveProductName() {
	if p, ok := s.snap().Product(s.draft.String("productId")); ok {
		s.draft["productName"] = p.Name
	}
}

func (s *Session) resolveRelatedName() {
	kind := model.KindVendor
	if s.draft.String("contextType") == model.ContextClient {
		kind = model.KindClient
	}
	if c, ok := relation.Company(s.snap(), kind, s.draft.String("relatedId")); ok {
		s.draft["relatedName"] = c.CompanyName
	}
}

// sameValue compares loosely typed form values by their printed form, so a stored
// json.Number and a decoded float64 of the same number are equal.
func sameValue(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func valueOr(v, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}
