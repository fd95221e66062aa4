package service

import (
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// In-memory repository fakes. They keep just enough behavior for the service
// tests: stored values are copied on the way in and out so a test cannot
// mutate repository state through a returned pointer.

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	stored := *sale
	r.sales[sale.ID] = &stored
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *sale
	return &copied, nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSaleRepo) GetBySourceProforma(_ context.Context, proformaID uuid.UUID) (*entity.Sale, error) {
	for _, sale := range r.sales {
		if sale.SourceProformaID != nil && *sale.SourceProformaID == proformaID {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetByInvoiceNumber(_ context.Context, userID uuid.UUID, invoiceNumber string) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.UserID == userID && sale.InvoiceNumber != nil && *sale.InvoiceNumber == invoiceNumber {
			out = append(out, *sale)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *fakeSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	if _, ok := r.sales[sale.ID]; !ok {
		return errors.New("sale not found")
	}
	stored := *sale
	r.sales[sale.ID] = &stored
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, userID uuid.UUID, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.UserID == userID {
			out = append(out, *sale)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListPending(_ context.Context, userID uuid.UUID) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, sale := range r.sales {
		if sale.UserID == userID && sale.PaymentStatus != enum.PaymentStatusPaid {
			out = append(out, *sale)
		}
	}
	return out, nil
}

type fakeSaleItemRepo struct {
	items map[uuid.UUID][]entity.SaleItem
}

func newFakeSaleItemRepo() *fakeSaleItemRepo {
	return &fakeSaleItemRepo{items: make(map[uuid.UUID][]entity.SaleItem)}
}

func (r *fakeSaleItemRepo) CreateBatch(_ context.Context, items []entity.SaleItem) error {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.SaleID] = append(r.items[item.SaleID], item)
	}
	return nil
}

func (r *fakeSaleItemRepo) GetBySaleID(_ context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	return r.items[saleID], nil
}

func (r *fakeSaleItemRepo) DeleteBySaleID(_ context.Context, saleID uuid.UUID) error {
	delete(r.items, saleID)
	return nil
}

type fakePaymentRepo struct {
	payments []entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			copied := r.payments[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) ListBySale(_ context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumBySale(_ context.Context, saleID uuid.UUID) (float64, error) {
	total := 0.0
	for _, p := range r.payments {
		if p.SaleID == saleID {
			total += p.Amount
		}
	}
	return total, nil
}

func (r *fakePaymentRepo) List(_ context.Context, userID uuid.UUID, _ *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*entity.Employee // keyed by user ID
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]*entity.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	stored := *employee
	r.employees[employee.UserID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Employee, error) {
	e, ok := r.employees[userID]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *entity.Employee) error {
	stored := *employee
	r.employees[employee.UserID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for userID, e := range r.employees {
		if e.ID == id {
			delete(r.employees, userID)
			return nil
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.Employee, int64, error) {
	var out []entity.Employee
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

// fakeLedgerRepo keys its rows by item and day. Setting failItemID makes
// every write for that item fail, which is how the conversion tests force a
// per-item reconciliation failure.
type fakeLedgerRepo struct {
	rows       []*entity.InventoryLog
	failItemID uuid.UUID
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (r *fakeLedgerRepo) Create(_ context.Context, log *entity.InventoryLog) error {
	if log.ItemID == r.failItemID {
		return errors.New("ledger unavailable")
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	stored := *log
	r.rows = append(r.rows, &stored)
	return nil
}

func (r *fakeLedgerRepo) GetByItemAndDate(_ context.Context, itemID uuid.UUID, date time.Time) (*entity.InventoryLog, error) {
	for _, row := range r.rows {
		if row.ItemID == itemID && row.LogDate.Equal(date) {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) GetLatestBefore(_ context.Context, itemID uuid.UUID, date time.Time) (*entity.InventoryLog, error) {
	var latest *entity.InventoryLog
	for _, row := range r.rows {
		if row.ItemID == itemID && row.LogDate.Before(date) {
			if latest == nil || row.LogDate.After(latest.LogDate) {
				latest = row
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, log *entity.InventoryLog) error {
	if log.ItemID == r.failItemID {
		return errors.New("ledger unavailable")
	}
	for i, row := range r.rows {
		if row.ID == log.ID {
			stored := *log
			r.rows[i] = &stored
			return nil
		}
	}
	return errors.New("ledger row not found")
}

func (r *fakeLedgerRepo) ListByItem(_ context.Context, itemID uuid.UUID, _ *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	var out []entity.InventoryLog
	for _, row := range r.rows {
		if row.ItemID == itemID {
			out = append(out, *row)
		}
	}
	return out, int64(len(out)), nil
}

// proformaStore backs the proforma and proforma item fakes so GetWithItems
// sees lines written through the item repository.
type proformaStore struct {
	proformas map[uuid.UUID]*entity.Proforma
	items     map[uuid.UUID][]entity.ProformaItem
}

func newProformaStore() *proformaStore {
	return &proformaStore{
		proformas: make(map[uuid.UUID]*entity.Proforma),
		items:     make(map[uuid.UUID][]entity.ProformaItem),
	}
}

type fakeProformaRepo struct {
	store *proformaStore
}

func (r *fakeProformaRepo) Create(_ context.Context, proforma *entity.Proforma) error {
	if proforma.ID == uuid.Nil {
		proforma.ID = uuid.New()
	}
	stored := *proforma
	stored.Items = nil
	r.store.proformas[proforma.ID] = &stored
	return nil
}

func (r *fakeProformaRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Proforma, error) {
	p, ok := r.store.proformas[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProformaRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Proforma, error) {
	p, ok := r.store.proformas[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	copied.Items = append([]entity.ProformaItem(nil), r.store.items[id]...)
	return &copied, nil
}

func (r *fakeProformaRepo) GetByReference(_ context.Context, reference string) (*entity.Proforma, error) {
	for _, p := range r.store.proformas {
		if p.Reference == reference {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProformaRepo) Update(_ context.Context, proforma *entity.Proforma) error {
	if _, ok := r.store.proformas[proforma.ID]; !ok {
		return errors.New("proforma not found")
	}
	stored := *proforma
	stored.Items = nil
	r.store.proformas[proforma.ID] = &stored
	return nil
}

func (r *fakeProformaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.proformas, id)
	return nil
}

func (r *fakeProformaRepo) List(_ context.Context, userID uuid.UUID, _ *repository.ProformaFilterParams) ([]entity.Proforma, int64, error) {
	var out []entity.Proforma
	for _, p := range r.store.proformas {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProformaRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.ProformaStatus) error {
	p, ok := r.store.proformas[id]
	if !ok {
		return errors.New("proforma not found")
	}
	p.Status = status
	return nil
}

func (r *fakeProformaRepo) GetNextReferenceNumber(_ context.Context) (int, error) {
	return len(r.store.proformas) + 1, nil
}

type fakeProformaItemRepo struct {
	store *proformaStore
}

func (r *fakeProformaItemRepo) CreateBatch(_ context.Context, items []entity.ProformaItem) error {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.store.items[item.ProformaID] = append(r.store.items[item.ProformaID], item)
	}
	return nil
}

func (r *fakeProformaItemRepo) GetByProformaID(_ context.Context, proformaID uuid.UUID) ([]entity.ProformaItem, error) {
	return append([]entity.ProformaItem(nil), r.store.items[proformaID]...), nil
}

func (r *fakeProformaItemRepo) Update(_ context.Context, item *entity.ProformaItem) error {
	rows := r.store.items[item.ProformaID]
	for i := range rows {
		if rows[i].ID == item.ID {
			rows[i] = *item
			return nil
		}
	}
	return errors.New("proforma item not found")
}

func (r *fakeProformaItemRepo) DeleteByProformaID(_ context.Context, proformaID uuid.UUID) error {
	delete(r.store.items, proformaID)
	return nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*entity.InventoryItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*entity.InventoryItem)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) GetByName(_ context.Context, userID uuid.UUID, name string) (*entity.InventoryItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.Name == name {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, userID uuid.UUID, _ *repository.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	items, err := r.ListAll(context.Background(), userID)
	return items, int64(len(items)), err
}

func (r *fakeItemRepo) ListAll(_ context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	stored := *customer
	r.customers[customer.ID] = &stored
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) GetByName(_ context.Context, userID uuid.UUID, name string) (*entity.Customer, error) {
	for _, customer := range r.customers {
		if customer.UserID == userID && customer.Name == name {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	stored := *customer
	r.customers[customer.ID] = &stored
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, userID uuid.UUID, _ *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, customer := range r.customers {
		if customer.UserID == userID {
			out = append(out, *customer)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEvidenceStore struct {
	err error
}

func (s *fakeEvidenceStore) SaveInvoice(proformaID uuid.UUID, _ *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "/storage/invoices/" + proformaID.String() + "/invoice.pdf", nil
}

type fakeAnalyticsRepo struct {
	daily       []repository.DailySalesResult
	topItems    []repository.TopItemResult
	outstanding []repository.OutstandingResult
	revenue     float64
	pending     int64
}

func (r *fakeAnalyticsRepo) GetDailySales(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]repository.DailySalesResult, error) {
	return r.daily, nil
}

func (r *fakeAnalyticsRepo) GetTopItems(_ context.Context, _ uuid.UUID, _, _ time.Time, limit int) ([]repository.TopItemResult, error) {
	if limit < len(r.topItems) {
		return r.topItems[:limit], nil
	}
	return r.topItems, nil
}

func (r *fakeAnalyticsRepo) GetOutstanding(_ context.Context, _ uuid.UUID) ([]repository.OutstandingResult, error) {
	return r.outstanding, nil
}

func (r *fakeAnalyticsRepo) GetTotalRevenue(_ context.Context, _ uuid.UUID, _, _ time.Time) (float64, error) {
	return r.revenue, nil
}

func (r *fakeAnalyticsRepo) CountPendingProformas(_ context.Context, _ uuid.UUID) (int64, error) {
	return r.pending, nil
}
