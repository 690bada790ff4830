package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"biowearth/internal/calc"
	"biowearth/internal/config"
	"biowearth/internal/dto"
	"biowearth/internal/model"
	"biowearth/internal/repository"
	"biowearth/internal/service"
	"biowearth/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	feed  *store.Feed
	repo  *repository.Repository
	coord service.Coordinator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	feed := store.NewFeed(store.NewMemoryBackend(), nil)
	repo := repository.New(feed)
	require.NoError(t, repo.Start(context.Background()))
	t.Cleanup(repo.Stop)
	require.NoError(t, service.NewBootstrapper(feed, repo).Run(context.Background()))
	return &env{feed: feed, repo: repo, coord: service.NewCoordinator(feed, repo)}
}

func (e *env) create(t *testing.T, coll model.Collection, f store.Fields) string {
	t.Helper()
	id, err := e.feed.Create(context.Background(), coll, f)
	require.NoError(t, err)
	return id
}

func docJSON(t *testing.T, d store.Document) string {
	t.Helper()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	return string(b)
}

func fullTerms() []any {
	return []any{
		map[string]any{"label": "Advance", "percent": 50.0, "status": "Pending"},
		map[string]any{"label": "Delivery", "percent": 50.0, "status": "Pending"},
	}
}

// ── Sessions and defaults ────────────────────────────────────────────────────

func TestOpen_TaskDefaults(t *testing.T) {
	e := newEnv(t)
	sess, err := e.coord.Open(model.KindTask, nil)
	require.NoError(t, err)
	assert.Equal(t, service.StateOpen, sess.State())
	assert.Equal(t, service.ModeNew, sess.Mode())
	assert.Equal(t, model.ContextInternal, sess.Get("contextType"))
	assert.Equal(t, model.PriorityNormal, sess.Get("priority"))

	prefilled, err := e.coord.Open(model.KindTask, store.Fields{"contextType": "Vendor", "priority": "High"})
	require.NoError(t, err)
	assert.Equal(t, "Vendor", prefilled.Get("contextType"))
	assert.Equal(t, "High", prefilled.Get("priority"))
}

func TestOpen_UnknownKind(t *testing.T) {
	e := newEnv(t)
	_, err := e.coord.Open(model.Kind("invoice"), nil)
	assert.ErrorIs(t, err, service.ErrUnknownKind)
}

func TestOpen_FormulationAndRFQDefaults(t *testing.T) {
	e := newEnv(t)
	f, err := e.coord.Open(model.KindFormulation, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, f.Get("ingredients"))
	assert.Equal(t, []any{}, f.Get("packaging"))

	r, err := e.coord.Open(model.KindRFQ, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RFQTypeSKU, r.Get("rfqType"))
	assert.Equal(t, model.RFQOpen, r.Get("status"))
}

func TestSKUSession_GeneratesCodeWhileNew(t *testing.T) {
	e := newEnv(t)
	pid := e.create(t, model.CollProducts, store.Fields{"name": "Whey", "format": "Powder"})

	sess, err := e.coord.Open(model.KindSKU, store.Fields{"productId": pid})
	require.NoError(t, err)
	assert.Equal(t, "g", sess.Get("unit"))
	assert.Equal(t, "Jar", sess.Get("packType"))
	assert.Equal(t, "WHEY-G-JAR", sess.Get("name"))

	require.NoError(t, sess.SetAll(store.Fields{"variant": "Iso", "packSize": 1.0, "flavour": "Choc"}))
	assert.Equal(t, "WHEY-ISO-1G-JAR-CHOC", sess.Get("name"))

	id, err := e.coord.Submit(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, service.StateClosed, sess.State())

	edit, err := e.coord.Edit(model.KindSKU, id)
	require.NoError(t, err)
	require.NoError(t, edit.Set("variant", "Concentrate"))
	assert.Equal(t, "WHEY-ISO-1G-JAR-CHOC", edit.Get("name"), "edits keep the stored code")
}

func TestSKUSession_NoProductFallsBack(t *testing.T) {
	e := newEnv(t)
	sess, err := e.coord.Open(model.KindSKU, nil)
	require.NoError(t, err)
	assert.Equal(t, calc.DefaultProductCode+"-G-JAR", sess.Get("name"))
}

func TestOrderSession_RecomputesTotals(t *testing.T) {
	e := newEnv(t)
	sess, err := e.coord.Open(model.KindOrder, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sess.Get("amount"))

	require.NoError(t, sess.SetAll(store.Fields{"qty": "10", "rate": 5.0, "taxRate": "18"}))
	assert.Equal(t, 59.0, sess.Get("amount"))
	assert.Equal(t, 9.0, sess.Get("taxAmount"))
}

func TestOrderSession_IgnoresClientTotals(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id, err := e.coord.Save(ctx, model.KindOrder, "", store.Fields{
		"qty": 2.0, "rate": 10.0, "taxRate": 0.0, "amount": 1.0,
		"paymentTerms": []any{map[string]any{"label": "Advance", "percent": 100.0}},
	})
	require.NoError(t, err)

	_, err = e.coord.Save(ctx, model.KindOrder, id, store.Fields{"amount": 999.0, "taxAmount": 5.0})
	require.NoError(t, err)

	order, ok := e.repo.Snapshot().Order(id)
	require.True(t, ok)
	assert.Equal(t, "20", order.Amount.Decimal().String())
	assert.Equal(t, "0", order.TaxAmount.Decimal().String())
}

func TestSKUSession_CodeCannotBeSetByCaller(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pid := e.create(t, model.CollProducts, store.Fields{"name": "Whey", "format": "Powder"})

	draft, err := e.coord.Preview(model.KindSKU, "", store.Fields{"productId": pid, "name": "CUSTOM"})
	require.NoError(t, err)
	assert.Equal(t, "WHEY-G-JAR", draft["name"])

	id, err := e.coord.Save(ctx, model.KindSKU, "", store.Fields{
		"productId": pid, "variant": "Isolate", "packSize": 1.0, "unit": "kg", "flavour": "Chocolate",
	})
	require.NoError(t, err)
	sku, ok := e.repo.Snapshot().SKU(id)
	require.True(t, ok)
	assert.Equal(t, "WHEY-ISOLATE-1KG-JAR-CHOCOLATE", sku.Name)

	_, err = e.coord.Save(ctx, model.KindSKU, id, store.Fields{"name": "RENAMED"})
	require.NoError(t, err)
	sku, ok = e.repo.Snapshot().SKU(id)
	require.True(t, ok)
	assert.Equal(t, "WHEY-ISOLATE-1KG-JAR-CHOCOLATE", sku.Name)
}

func TestTaskSession_ContextChangeResetsRelation(t *testing.T) {
	e := newEnv(t)
	cid := e.create(t, model.CollClients, store.Fields{"companyName": "Acme"})

	sess, err := e.coord.Open(model.KindTask, nil)
	require.NoError(t, err)
	require.NoError(t, sess.Set("contextType", "Client"))
	require.NoError(t, sess.Set("relatedId", cid))
	assert.Equal(t, "Acme", sess.Get("relatedName"))

	require.NoError(t, sess.Set("contextType", "Client"))
	assert.Equal(t, cid, sess.Get("relatedId"), "same value is not a change")

	require.NoError(t, sess.Set("contextType", "Vendor"))
	assert.Nil(t, sess.Get("relatedId"))
	assert.Nil(t, sess.Get("relatedName"))
}

func TestSession_ClosedRejectsEdits(t *testing.T) {
	e := newEnv(t)
	sess, err := e.coord.Open(model.KindProduct, store.Fields{"name": "Whey"})
	require.NoError(t, err)
	sess.Cancel()

	assert.Equal(t, service.StateClosed, sess.State())
	assert.ErrorIs(t, sess.Set("name", "x"), service.ErrSessionClosed)
	_, err = e.coord.Submit(context.Background(), sess)
	assert.ErrorIs(t, err, service.ErrSessionClosed)
	assert.Empty(t, e.repo.Snapshot().Products)
}

// ── Submit ───────────────────────────────────────────────────────────────────

func TestSubmit_TaskLinksPrimaryAndSecondaryCompany(t *testing.T) {
	e := newEnv(t)
	cid := e.create(t, model.CollClients, store.Fields{"companyName": "Acme"})
	vid := e.create(t, model.CollVendors, store.Fields{"companyName": "NutriCo"})

	id, err := e.coord.Save(context.Background(), model.KindTask, "", store.Fields{
		"title":             "Send samples",
		"contextType":       "Client",
		"relatedId":         cid,
		"secondaryVendorId": vid,
	})
	require.NoError(t, err)

	task, ok := e.repo.Snapshot().Task(id)
	require.True(t, ok)
	assert.Equal(t, cid, task.RelatedClientID)
	assert.Equal(t, vid, task.RelatedVendorID)
	assert.Equal(t, "Acme", task.RelatedName)
	assert.Equal(t, model.PriorityNormal, task.Priority)
}

func TestSubmit_VendorTaskLinksSecondaryClient(t *testing.T) {
	e := newEnv(t)
	cid := e.create(t, model.CollClients, store.Fields{"companyName": "Acme"})
	vid := e.create(t, model.CollVendors, store.Fields{"companyName": "NutriCo"})

	id, err := e.coord.Save(context.Background(), model.KindTask, "", store.Fields{
		"title": "Audit", "contextType": "Vendor", "relatedId": vid, "secondaryClientId": cid,
	})
	require.NoError(t, err)
	task, _ := e.repo.Snapshot().Task(id)
	assert.Equal(t, vid, task.RelatedVendorID)
	assert.Equal(t, cid, task.RelatedClientID)
	assert.Equal(t, "NutriCo", task.RelatedName)
}

func TestSubmit_InternalTaskIsNotLinked(t *testing.T) {
	e := newEnv(t)
	id, err := e.coord.Save(context.Background(), model.KindTask, "", store.Fields{"title": "Payroll", "secondaryVendorId": "v1"})
	require.NoError(t, err)
	task, _ := e.repo.Snapshot().Task(id)
	assert.Empty(t, task.RelatedVendorID)
	assert.Empty(t, task.RelatedClientID)
}

func TestSubmit_OrderMilestonesMustSumTo100(t *testing.T) {
	e := newEnv(t)
	sess, err := e.coord.Open(model.KindOrder, nil)
	require.NoError(t, err)
	require.NoError(t, sess.SetAll(store.Fields{
		"qty": 10.0, "rate": 5.0,
		"paymentTerms": []any{
			map[string]any{"label": "Advance", "percent": 50.0},
			map[string]any{"label": "Delivery", "percent": 40.0},
		},
	}))

	_, err = e.coord.Submit(context.Background(), sess)
	var me *calc.MilestoneError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "Payment milestones must sum to 100%. Current sum: 90%", err.Error())
	assert.Equal(t, service.StateOpen, sess.State())
	assert.Equal(t, err, sess.Err())
	assert.Empty(t, e.repo.Snapshot().Orders)

	require.NoError(t, sess.Set("paymentTerms", fullTerms()))
	id, err := e.coord.Submit(context.Background(), sess)
	require.NoError(t, err)
	assert.NoError(t, sess.Err())

	order, ok := e.repo.Snapshot().Order(id)
	require.True(t, ok)
	assert.Equal(t, "50", order.Amount.Decimal().String())
}

func TestSubmit_OrderWithinToleranceAccepted(t *testing.T) {
	e := newEnv(t)
	_, err := e.coord.Save(context.Background(), model.KindOrder, "", store.Fields{
		"paymentTerms": []any{
			map[string]any{"percent": "33.3"},
			map[string]any{"percent": "33.3"},
			map[string]any{"percent": "33.35"},
		},
	})
	assert.NoError(t, err)
}

func TestSubmit_SalesQuoteCopiesBaseCost(t *testing.T) {
	e := newEnv(t)
	pq := e.create(t, model.CollQuotesReceived, store.Fields{"skuId": "s1", "price": 80})

	sess, err := e.coord.Open(model.KindQuoteSent, store.Fields{"skuId": "s1"})
	require.NoError(t, err)
	require.NoError(t, sess.Set("baseCostId", pq))
	assert.Equal(t, 80.0, sess.Get("baseCostPrice"))

	id, err := e.coord.Submit(context.Background(), sess)
	require.NoError(t, err)

	// later edits of the purchase quote do not follow into the sale
	require.NoError(t, e.feed.Update(context.Background(), model.CollQuotesReceived, pq, store.Fields{"price": 95}))
	q, ok := e.repo.Snapshot().QuoteSent(id)
	require.True(t, ok)
	assert.Equal(t, "80", q.BaseCostPrice.String())
}

func TestSubmit_SalesQuoteKeepsExplicitBaseCost(t *testing.T) {
	e := newEnv(t)
	pq := e.create(t, model.CollQuotesReceived, store.Fields{"skuId": "s1", "price": 80})

	id, err := e.coord.Save(context.Background(), model.KindQuoteSent, "", store.Fields{
		"skuId": "s1", "baseCostId": pq, "baseCostPrice": 75.0,
	})
	require.NoError(t, err)
	q, _ := e.repo.Snapshot().QuoteSent(id)
	assert.Equal(t, "75", q.BaseCostPrice.String())
}

func TestEditSubmit_UnchangedIsIdempotent(t *testing.T) {
	e := newEnv(t)
	cid := e.create(t, model.CollClients, store.Fields{"companyName": "Acme"})
	sid := e.create(t, model.CollSKUs, store.Fields{"name": "WHEY-1KG", "unknownField": "kept"})
	oid := e.create(t, model.CollOrders, store.Fields{
		"orderId": "PO-1", "companyId": cid, "skuId": sid,
		"qty": 3, "rate": "12.5", "taxRate": 5, "amount": 39.375, "taxAmount": 1.875,
		"paymentTerms": fullTerms(),
	})
	tid := e.create(t, model.CollTasks, store.Fields{
		"title": "Follow up", "contextType": "Client", "relatedId": cid, "relatedClientId": cid,
	})

	cases := []struct {
		kind model.Kind
		coll model.Collection
		id   string
	}{
		{model.KindSKU, model.CollSKUs, sid},
		{model.KindOrder, model.CollOrders, oid},
		{model.KindTask, model.CollTasks, tid},
		{model.KindClient, model.CollClients, cid},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			before, ok := e.repo.Find(tc.coll, tc.id)
			require.True(t, ok)

			sess, err := e.coord.Edit(tc.kind, tc.id)
			require.NoError(t, err)
			_, err = e.coord.Submit(context.Background(), sess)
			require.NoError(t, err)

			after, ok := e.repo.Find(tc.coll, tc.id)
			require.True(t, ok)
			assert.JSONEq(t, docJSON(t, before), docJSON(t, after))
		})
	}
}

func TestEdit_PreservesUntouchedFields(t *testing.T) {
	e := newEnv(t)
	id := e.create(t, model.CollVendors, store.Fields{"companyName": "NutriCo", "gstNumber": "29ABC"})

	_, err := e.coord.Save(context.Background(), model.KindVendor, id, store.Fields{"status": "On Hold"})
	require.NoError(t, err)

	doc, _ := e.repo.Find(model.CollVendors, id)
	assert.Equal(t, "29ABC", doc.Fields.String("gstNumber"))
	assert.Equal(t, "On Hold", doc.Fields.String("status"))
	assert.NotNil(t, doc.Fields[store.FieldCreatedAt])
}

func TestEdit_MissingRecord(t *testing.T) {
	e := newEnv(t)
	_, err := e.coord.Edit(model.KindProduct, "nope")
	assert.ErrorIs(t, err, service.ErrRecordNotFound)
}

func TestPreview_DoesNotWrite(t *testing.T) {
	e := newEnv(t)
	draft, err := e.coord.Preview(model.KindOrder, "", store.Fields{"qty": 2, "rate": 100, "taxRate": 10})
	require.NoError(t, err)
	assert.Equal(t, 220.0, draft["amount"])
	assert.Equal(t, 20.0, draft["taxAmount"])
	assert.Empty(t, e.repo.Snapshot().Orders)
}

type failingAdapter struct {
	store.Adapter
}

func (failingAdapter) Create(context.Context, model.Collection, store.Fields) (string, error) {
	return "", errors.New("connection reset")
}

func TestSubmit_WriteFailureIsReported(t *testing.T) {
	e := newEnv(t)
	coord := service.NewCoordinator(failingAdapter{Adapter: e.feed}, e.repo)
	sess, err := coord.Open(model.KindProduct, store.Fields{"name": "Whey"})
	require.NoError(t, err)

	_, err = coord.Submit(context.Background(), sess)
	assert.ErrorIs(t, err, service.ErrStoreWrite)
	assert.Equal(t, service.StateOpen, sess.State())
	assert.Error(t, sess.Err())
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestDelete_RequiresConfirmation(t *testing.T) {
	e := newEnv(t)
	pid := e.create(t, model.CollProducts, store.Fields{"name": "Whey"})
	sid := e.create(t, model.CollSKUs, store.Fields{"productId": pid})

	err := e.coord.Delete(context.Background(), model.KindProduct, pid, false)
	assert.ErrorIs(t, err, service.ErrConfirmationRequired)
	assert.Len(t, e.repo.Snapshot().Products, 1)

	require.NoError(t, e.coord.Delete(context.Background(), model.KindProduct, pid, true))
	assert.Empty(t, e.repo.Snapshot().Products)

	sku, ok := e.repo.Snapshot().SKU(sid)
	require.True(t, ok, "references are left dangling")
	assert.Equal(t, pid, sku.ProductID)

	err = e.coord.Delete(context.Background(), model.KindProduct, pid, true)
	assert.ErrorIs(t, err, service.ErrRecordNotFound)
}

func TestDelete_ProtectsBuiltInAdmin(t *testing.T) {
	e := newEnv(t)
	users := e.repo.Snapshot().Users
	require.Len(t, users, 1)

	err := e.coord.Delete(context.Background(), model.KindUser, users[0].ID, true)
	assert.ErrorIs(t, err, service.ErrProtectedUser)

	staff := e.create(t, model.CollUsers, store.Fields{"username": "ravi", "password": "x", "role": model.RoleStaff})
	assert.NoError(t, e.coord.Delete(context.Background(), model.KindUser, staff, true))
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func TestBootstrap_SeedsOnce(t *testing.T) {
	e := newEnv(t)
	snap := e.repo.Snapshot()
	require.Len(t, snap.Users, 1)
	assert.Equal(t, model.DefaultAdminUsername, snap.Users[0].Username)
	assert.Equal(t, model.DefaultAdminPassword, snap.Users[0].Password)
	assert.Equal(t, model.RoleAdmin, snap.Users[0].Role)
	assert.Equal(t, model.DefaultSettings(), snap.Settings)

	require.NoError(t, service.NewBootstrapper(e.feed, e.repo).Run(context.Background()))
	assert.Len(t, e.repo.Snapshot().Users, 1)
}

// ── Inline edits ─────────────────────────────────────────────────────────────

func TestInline_ToggleAndPatchTask(t *testing.T) {
	e := newEnv(t)
	svc := service.NewInlineService(e.feed, e.repo)
	id := e.create(t, model.CollTasks, store.Fields{"title": "Call", "status": "Pending"})
	ctx := context.Background()

	status, err := svc.ToggleTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, status)
	status, err = svc.ToggleTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, status)

	title, due := "Call back", "2024-05-01"
	require.NoError(t, svc.PatchTask(ctx, id, dto.TaskPatchRequest{Title: &title, DueDate: &due}))
	task, _ := e.repo.Snapshot().Task(id)
	assert.Equal(t, "Call back", task.Title)
	assert.Equal(t, "2024-05-01", task.DueDate)

	assert.ErrorIs(t, svc.PatchTask(ctx, id, dto.TaskPatchRequest{}), service.ErrNothingToApply)
	_, err = svc.ToggleTask(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrRecordNotFound)
}

func TestInline_CompanyStatus(t *testing.T) {
	e := newEnv(t)
	svc := service.NewInlineService(e.feed, e.repo)
	id := e.create(t, model.CollClients, store.Fields{"companyName": "Acme"})

	require.NoError(t, svc.SetCompanyStatus(context.Background(), model.KindClient, id, "Hot Lead"))
	c, _ := e.repo.Snapshot().Client(id)
	assert.Equal(t, "Hot Lead", c.Status)

	assert.ErrorIs(t, svc.SetCompanyStatus(context.Background(), model.KindTask, id, "x"), service.ErrNotACompany)
}

func TestInline_PaymentsAndDocs(t *testing.T) {
	e := newEnv(t)
	svc := service.NewInlineService(e.feed, e.repo)
	ctx := context.Background()
	id := e.create(t, model.CollOrders, store.Fields{"orderId": "SO-1", "paymentTerms": fullTerms()})

	status, err := svc.TogglePayment(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, status)
	order, _ := e.repo.Snapshot().Order(id)
	assert.Equal(t, model.PaymentPending, order.PaymentTerms[0].Status)
	assert.Equal(t, model.PaymentPaid, order.PaymentTerms[1].Status)
	_, err = svc.TogglePayment(ctx, id, 2)
	assert.ErrorIs(t, err, service.ErrTermOutOfRange)

	required, err := svc.ToggleDoc(ctx, id, "COA")
	require.NoError(t, err)
	assert.True(t, required)
	order, _ = e.repo.Snapshot().Order(id)
	assert.Equal(t, model.DocRequirement{Required: true}, order.DocRequirements["COA"])

	link := "https://drive.example/coa"
	err = svc.PatchDoc(ctx, id, "COA", dto.DocPatchRequest{Link: &link})
	assert.ErrorIs(t, err, service.ErrDocNotReceived)

	received := true
	require.NoError(t, svc.PatchDoc(ctx, id, "COA", dto.DocPatchRequest{Received: &received, Link: &link}))
	order, _ = e.repo.Snapshot().Order(id)
	assert.Equal(t, model.DocRequirement{Required: true, Received: true, Link: link}, order.DocRequirements["COA"])

	assert.ErrorIs(t, svc.PatchDoc(ctx, id, "MSDS", dto.DocPatchRequest{Received: &received}), service.ErrDocNotRequired)

	required, err = svc.ToggleDoc(ctx, id, "COA")
	require.NoError(t, err)
	assert.False(t, required)
	order, _ = e.repo.Snapshot().Order(id)
	assert.NotContains(t, order.DocRequirements, "COA")
}

// ── Auth and settings ────────────────────────────────────────────────────────

func TestAuth_Login(t *testing.T) {
	e := newEnv(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	svc := service.NewAuthService(e.repo, cfg)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, model.RoleAdmin, claims["role"])

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "Password123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestSettings_AddAndRemove(t *testing.T) {
	e := newEnv(t)
	svc := service.NewSettingsService(e.feed, e.repo)
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, model.SettingUnits, "oz")
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "kg", "ml", "L", "pcs", "oz"}, resp.List)
	assert.Equal(t, resp.List, e.repo.Snapshot().Settings.List(model.SettingUnits))

	resp, err = svc.AddItem(ctx, model.SettingUnits, "kg")
	require.NoError(t, err)
	assert.Len(t, resp.List, 6, "duplicates are ignored")
	resp, err = svc.AddItem(ctx, model.SettingUnits, "  ")
	require.NoError(t, err)
	assert.Len(t, resp.List, 6, "empty items are ignored")

	resp, err = svc.RemoveItem(ctx, model.SettingUnits, "ml")
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "kg", "L", "pcs", "oz"}, e.repo.Snapshot().Settings.List(model.SettingUnits))

	_, err = svc.AddItem(ctx, "colours", "red")
	assert.ErrorIs(t, err, service.ErrUnknownSetting)
}
