package service

import (
	"context"
	"errors"
	"fmt"

	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/repository"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownKind          = errors.New("unknown record kind")
	ErrRecordNotFound       = errors.New("record not found")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
	ErrSessionClosed        = errors.New("edit session is closed")
	ErrProtectedUser        = errors.New("the built-in admin user cannot be deleted")
	// ErrStoreWrite wraps every failed write through the document store.
	ErrStoreWrite = errors.New("store write failed")
)

// Reader is the read side the services need: the typed snapshot and raw documents.
type Reader interface {
	Snapshot() *repository.Snapshot
	Find(coll model.Collection, id string) (store.Document, bool)
	All(coll model.Collection) []store.Document
}

// Coordinator turns form sessions into store writes. It is the only component
// that creates, updates or deletes records.
type Coordinator interface {
	Open(kind model.Kind, prefill store.Fields) (*Session, error)
	Edit(kind model.Kind, id string) (*Session, error)
	Submit(ctx context.Context, sess *Session) (string, error)
	// Save opens a session (new when id is empty), applies fields and submits it.
	Save(ctx context.Context, kind model.Kind, id string, fields store.Fields) (string, error)
	// Preview applies fields to a session without writing and returns the draft.
	Preview(kind model.Kind, id string, fields store.Fields) (store.Fields, error)
	Delete(ctx context.Context, kind model.Kind, id string, confirmed bool) error

	Records(kind model.Kind) ([]store.Document, error)
	Record(kind model.Kind, id string) (store.Document, error)
}

type coordinator struct {
	writer store.Adapter
	reader Reader
}

func NewCoordinator(writer store.Adapter, reader Reader) Coordinator {
	return &coordinator{writer: writer, reader: reader}
}

func (c *coordinator) Open(kind model.Kind, prefill store.Fields) (*Session, error) {
	coll, ok := kind.Collection()
	if !ok {
		return nil, ErrUnknownKind
	}
	s := &Session{
		kind:  kind,
		coll:  coll,
		mode:  ModeNew,
		draft: prefill.Clone(),
		state: StateOpen,
		snap:  c.reader.Snapshot,
	}
	delete(s.draft, store.FieldID)
	delete(s.draft, store.FieldCreatedAt)
	c.applyDefaults(s)
	return s, nil
}

func (c *coordinator) Edit(kind model.Kind, id string) (*Session, error) {
	coll, ok := kind.Collection()
	if !ok {
		return nil, ErrUnknownKind
	}
	doc, ok := c.reader.Find(coll, id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &Session{
		kind:  kind,
		coll:  coll,
		mode:  ModeEdit,
		id:    id,
		draft: doc.Fields.Clone(),
		state: StateOpen,
		snap:  c.reader.Snapshot,
	}, nil
}

// applyDefaults fills the fields a new form starts with.
func (c *coordinator) applyDefaults(s *Session) {
	d := s.draft
	settings := c.reader.Snapshot().Settings
	switch s.kind {
	case model.KindTask:
		if d.String("contextType") == "" {
			d["contextType"] = model.ContextInternal
			d["priority"] = model.PriorityNormal
		}
	case model.KindSKU:
		setDefault(d, "unit", settings.First(model.SettingUnits, calc.DefaultUnit))
		setDefault(d, "packType", settings.First(model.SettingPackTypes, calc.DefaultPackType))
		setDefault(d, "variant", "")
		setDefault(d, "flavour", "")
		setDefault(d, "packSize", "")
		if d.String("productName") == "" {
			s.resolveProductName()
		}
		s.recomputeSKUName()
	case model.KindFormulation:
		setDefault(d, "ingredients", []any{})
		setDefault(d, "packaging", []any{})
	case model.KindOrder:
		s.recomputeOrder()
	case model.KindRFQ:
		setDefault(d, "rfqType", model.RFQTypeSKU)
		setDefault(d, "status", model.RFQOpen)
	}
}

func setDefault(d store.Fields, key string, value any) {
	if v, ok := d[key]; !ok || v == nil || v == "" {
		d[key] = value
	}
}

func (c *coordinator) Submit(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.state != StateOpen {
		return "", ErrSessionClosed
	}
	form := sess.draft.Clone()
	if err := c.transform(sess.kind, form); err != nil {
		sess.err = err
		return "", err
	}

	logger := log.With().Str("kind", string(sess.kind)).Str("collection", string(sess.coll)).Logger()
	id := sess.id
	var err error
	if sess.mode == ModeEdit {
		delete(form, store.FieldID)
		delete(form, store.FieldCreatedAt)
		err = c.writer.Update(ctx, sess.coll, id, form)
	} else {
		id, err = c.writer.Create(ctx, sess.coll, form)
	}
	if err != nil {
		logger.Error().Err(err).Str("mode", string(sess.mode)).Msg("service: submit failed")
		sess.err = err
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrRecordNotFound
		}
		return "", fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	logger.Info().Str("id", id).Str("mode", string(sess.mode)).Msg("service: record saved")
	sess.state = StateClosed
	sess.err = nil
	return id, nil
}

// transform applies the submit-time rules of a kind to the outgoing fields.
func (c *coordinator) transform(kind model.Kind, form store.Fields) error {
	switch kind {
	case model.KindTask:
		if form.String("contextType") == model.ContextInternal {
			return nil
		}
		if form.String("contextType") == model.ContextClient {
			form["relatedClientId"] = form["relatedId"]
			if v := form.String("secondaryVendorId"); v != "" {
				form["relatedVendorId"] = v
			}
		} else {
			form["relatedVendorId"] = form["relatedId"]
			if v := form.String("secondaryClientId"); v != "" {
				form["relatedClientId"] = v
			}
		}
	case model.KindOrder:
		var o model.Order
		if err := (store.Document{Fields: form}).Decode(&o); err != nil {
			log.Debug().Err(err).Msg("service: partial order decode")
		}
		return calc.ValidateMilestones(o.PaymentTerms)
	case model.KindQuoteSent:
		if v, ok := form["baseCostPrice"]; ok && v != nil && v != "" {
			return nil
		}
		if q, ok := c.reader.Snapshot().QuoteReceived(form.String("baseCostId")); ok {
			form["baseCostPrice"] = q.Price.Decimal().InexactFloat64()
		}
	}
	return nil
}

func (c *coordinator) session(kind model.Kind, id string) (*Session, error) {
	if id == "" {
		return c.Open(kind, nil)
	}
	return c.Edit(kind, id)
}

func (c *coordinator) Save(ctx context.Context, kind model.Kind, id string, fields store.Fields) (string, error) {
	sess, err := c.session(kind, id)
	if err != nil {
		return "", err
	}
	if err := sess.SetAll(fields); err != nil {
		return "", err
	}
	return c.Submit(ctx, sess)
}

func (c *coordinator) Preview(kind model.Kind, id string, fields store.Fields) (store.Fields, error) {
	sess, err := c.session(kind, id)
	if err != nil {
		return nil, err
	}
	if err := sess.SetAll(fields); err != nil {
		return nil, err
	}
	return sess.Draft(), nil
}

// Delete removes one document. Nothing that references it is touched.
func (c *coordinator) Delete(ctx context.Context, kind model.Kind, id string, confirmed bool) error {
	coll, ok := kind.Collection()
	if !ok {
		return ErrUnknownKind
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	doc, ok := c.reader.Find(coll, id)
	if !ok {
		return ErrRecordNotFound
	}
	if kind == model.KindUser && doc.Fields.String("username") == model.DefaultAdminUsername {
		return ErrProtectedUser
	}
	if err := c.writer.Delete(ctx, coll, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	log.Info().Str("kind", string(kind)).Str("id", id).Msg("service: record deleted")
	return nil
}

func (c *coordinator) Records(kind model.Kind) ([]store.Document, error) {
	coll, ok := kind.Collection()
	if !ok {
		return nil, ErrUnknownKind
	}
	docs := c.reader.All(coll)
	if docs == nil {
		docs = []store.Document{}
	}
	return docs, nil
}

func (c *coordinator) Record(kind model.Kind, id string) (store.Document, error) {
	coll, ok := kind.Collection()
	if !ok {
		return store.Document{}, ErrUnknownKind
	}
	doc, ok := c.reader.Find(coll, id)
	if !ok {
		return store.Document{}, ErrRecordNotFound
	}
	return doc, nil
}
