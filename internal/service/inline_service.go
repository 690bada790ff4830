package service

import (
	"context"
	"errors"
	"fmt"

	"biowearth/internal/dto"
	"biowearth/internal/model"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

var (
	ErrNotACompany    = errors.New("kind is not a vendor or client")
	ErrTermOutOfRange = errors.New("payment term index out of range")
	ErrDocNotRequired = errors.New("document is not required on this order")
	ErrDocNotReceived = errors.New("a link can only be set once the document is received")
	ErrNothingToApply = errors.New("no fields to update")
)

// InlineService applies the single-field edits made directly on boards and detail screens.
type InlineService interface {
	ToggleTask(ctx context.Context, id string) (string, error)
	PatchTask(ctx context.Context, id string, req dto.TaskPatchRequest) error
	SetCompanyStatus(ctx context.Context, kind model.Kind, id, status string) error
	TogglePayment(ctx context.Context, orderID string, idx int) (string, error)
	ToggleDoc(ctx context.Context, orderID, doc string) (bool, error)
	PatchDoc(ctx context.Context, orderID, doc string, req dto.DocPatchRequest) error
}

type inlineService struct {
	writer store.Adapter
	reader Reader
}

func NewInlineService(writer store.Adapter, reader Reader) InlineService {
	return &inlineService{writer: writer, reader: reader}
}

func (s *inlineService) update(ctx context.Context, coll model.Collection, id string, fields store.Fields) error {
	if err := s.writer.Update(ctx, coll, id, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	log.Debug().Str("collection", string(coll)).Str("id", id).Msg("service: inline update")
	return nil
}

// ToggleTask flips a task between Completed and Pending and returns the new status.
func (s *inlineService) ToggleTask(ctx context.Context, id string) (string, error) {
	t, ok := s.reader.Snapshot().Task(id)
	if !ok {
		return "", ErrRecordNotFound
	}
	status := model.TaskCompleted
	if t.Completed() {
		status = model.TaskPending
	}
	return status, s.update(ctx, model.CollTasks, id, store.Fields{"status": status})
}

func (s *inlineService) PatchTask(ctx context.Context, id string, req dto.TaskPatchRequest) error {
	if _, ok := s.reader.Snapshot().Task(id); !ok {
		return ErrRecordNotFound
	}
	fields := store.Fields{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Assignee != nil {
		fields["assignee"] = *req.Assignee
	}
	if req.DueDate != nil {
		fields["dueDate"] = *req.DueDate
	}
	if len(fields) == 0 {
		return ErrNothingToApply
	}
	return s.update(ctx, model.CollTasks, id, fields)
}

func (s *inlineService) SetCompanyStatus(ctx context.Context, kind model.Kind, id, status string) error {
	if kind != model.KindVendor && kind != model.KindClient {
		return ErrNotACompany
	}
	coll, _ := kind.Collection()
	if _, ok := s.reader.Find(coll, id); !ok {
		return ErrRecordNotFound
	}
	return s.update(ctx, coll, id, store.Fields{"status": status})
}

// orderFields returns a private copy of an order's stored body.
func (s *inlineService) orderFields(id string) (store.Fields, error) {
	doc, ok := s.reader.Find(model.CollOrders, id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return doc.Fields.Clone(), nil
}

// TogglePayment flips milestone idx between Paid and Pending and returns the new status.
func (s *inlineService) TogglePayment(ctx context.Context, orderID string, idx int) (string, error) {
	fields, err := s.orderFields(orderID)
	if err != nil {
		return "", err
	}
	terms, _ := fields["paymentTerms"].([]any)
	if idx < 0 || idx >= len(terms) {
		return "", ErrTermOutOfRange
	}
	term, ok := terms[idx].(map[string]any)
	if !ok {
		term = map[string]any{}
	}
	status := model.PaymentPaid
	if term["status"] == model.PaymentPaid {
		status = model.PaymentPending
	}
	term["status"] = status
	terms[idx] = term
	return status, s.update(ctx, model.CollOrders, orderID, store.Fields{"paymentTerms": terms})
}

// ToggleDoc adds doc to the order's requirements, or removes it when already
// present. It reports whether the document is required afterwards.
func (s *inlineService) ToggleDoc(ctx context.Context, orderID, doc string) (bool, error) {
	fields, err := s.orderFields(orderID)
	if err != nil {
		return false, err
	}
	docs := docRequirements(fields)
	_, required := docs[doc]
	if required {
		delete(docs, doc)
	} else {
		docs[doc] = map[string]any{"required": true, "received": false, "link": ""}
	}
	return !required, s.update(ctx, model.CollOrders, orderID, store.Fields{"docRequirements": docs})
}

func (s *inlineService) PatchDoc(ctx context.Context, orderID, doc string, req dto.DocPatchRequest) error {
	fields, err := s.orderFields(orderID)
	if err != nil {
		return err
	}
	docs := docRequirements(fields)
	entry, ok := docs[doc].(map[string]any)
	if !ok {
		return ErrDocNotRequired
	}
	if req.Received == nil && req.Link == nil {
		return ErrNothingToApply
	}
	if req.Received != nil {
		entry["received"] = *req.Received
	}
	if req.Link != nil {
		if received, _ := entry["received"].(bool); !received {
			return ErrDocNotReceived
		}
		entry["link"] = *req.Link
	}
	docs[doc] = entry
	return s.update(ctx, model.CollOrders, orderID, store.Fields{"docRequirements": docs})
}

func docRequirements(fields store.Fields) map[string]any {
	if docs, ok := fields["docRequirements"].(map[string]any); ok {
		return docs
	}
	return map[string]any{}
}
