package service_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// memStore — общее состояние фейковых репозиториев,
// транзакции эмулируются через sqlmock (ExpectBegin/ExpectCommit)
type memStore struct {
	users    map[string]*models.User
	products map[string]*models.Product
	sizes    map[string]*models.ProductSize // ключ: productID + "/" + size
	orders   map[string]*models.Order
	details  map[string]*models.OrderDetail
	payments map[string]*models.Payment
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*models.User),
		products: make(map[string]*models.Product),
		sizes:    make(map[string]*models.ProductSize),
		orders:   make(map[string]*models.Order),
		details:  make(map[string]*models.OrderDetail),
		payments: make(map[string]*models.Payment),
	}
}

type fakeUserRepo struct{ s *memStore }

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByIDTx(ctx context.Context, tx *sql.Tx, id string) (*models.User, error) {
	return f.GetUserByID(ctx, id)
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.s.users))
	for _, u := range f.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Email == user.Email {
			return nil, storage.ErrEmailTaken
		}
	}
	f.s.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) UpdateUserTx(ctx context.Context, tx *sql.Tx, user *models.User) error {
	if _, ok := f.s.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	f.s.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	if _, ok := f.s.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(f.s.users, id)
	return nil
}

type fakeProductRepo struct{ s *memStore }

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(f.s.products))
	for _, p := range f.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.s.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetProductTx(ctx context.Context, tx *sql.Tx, id string) (*models.Product, error) {
	return f.GetProductByID(ctx, id)
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) UpdateProductTx(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	if _, ok := f.s.products[p.ID]; !ok {
		return storage.ErrProductNotFound
	}
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := f.s.products[id]; !ok {
		return storage.ErrProductNotFound
	}
	delete(f.s.products, id)
	return nil
}

type fakeSizeRepo struct{ s *memStore }

var _ storage.SizeStorage = (*fakeSizeRepo)(nil)

func (f *fakeSizeRepo) ListSizes(ctx context.Context, productID string) ([]*models.ProductSize, error) {
	var out []*models.ProductSize
	for _, sz := range f.s.sizes {
		if sz.ProductID == productID {
			out = append(out, sz)
		}
	}
	return out, nil
}

func (f *fakeSizeRepo) GetSizeByID(ctx context.Context, id string) (*models.ProductSize, error) {
	for _, sz := range f.s.sizes {
		if sz.ID == id {
			return sz, nil
		}
	}
	return nil, storage.ErrSizeNotFound
}

func (f *fakeSizeRepo) LockSizeTx(ctx context.Context, tx *sql.Tx, productID, size string) (*models.ProductSize, error) {
	sz, ok := f.s.sizes[productID+"/"+size]
	if !ok {
		return nil, storage.ErrSizeNotFound
	}
	return sz, nil
}

func (f *fakeSizeRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID, size string, quantity int) error {
	sz, ok := f.s.sizes[productID+"/"+size]
	if !ok || sz.Stock < quantity {
		return storage.ErrInsufficientStock
	}
	sz.Stock -= quantity
	return nil
}

func (f *fakeSizeRepo) CreateSize(ctx context.Context, sz *models.ProductSize) error {
	f.s.sizes[sz.ProductID+"/"+sz.Size] = sz
	return nil
}

func (f *fakeSizeRepo) UpdateSize(ctx context.Context, sz *models.ProductSize) error {
	// Не требуется для сервисных тестов
	return nil
}

func (f *fakeSizeRepo) DeleteSize(ctx context.Context, id string) error {
	// Не требуется для сервисных тестов
	return nil
}

type fakeOrderRepo struct{ s *memStore }

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	stored := *order
	stored.TotalAmount = 0
	stored.IsComplete = false
	f.s.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := f.s.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetCurrentOrder(ctx context.Context, userID string) (*models.Order, error) {
	var latest *models.Order
	for _, o := range f.s.orders {
		if o.UserID != userID || o.IsComplete {
			continue
		}
		if latest == nil || o.OrderDate.After(latest.OrderDate) {
			latest = o
		}
	}
	if latest == nil {
		return nil, storage.ErrOrderNotFound
	}
	return latest, nil
}

func (f *fakeOrderRepo) UpdateAddress(ctx context.Context, orderID, address string) (*models.Order, error) {
	o, ok := f.s.orders[orderID]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	o.Address = address
	return o, nil
}

func (f *fakeOrderRepo) RecalculateTotalTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	o, ok := f.s.orders[orderID]
	if !ok {
		return storage.ErrOrderNotFound
	}
	total := 0.0
	for _, d := range f.s.details {
		if d.OrderID == orderID {
			total += float64(d.Quantity) * d.Price
		}
	}
	o.TotalAmount = total
	return nil
}

func (f *fakeOrderRepo) MarkCompleteTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	o, ok := f.s.orders[orderID]
	if !ok {
		return storage.ErrOrderNotFound
	}
	o.IsComplete = true
	return nil
}

func (f *fakeOrderRepo) DeleteOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	if _, ok := f.s.orders[orderID]; !ok {
		return storage.ErrOrderNotFound
	}
	delete(f.s.orders, orderID)
	return nil
}

type fakeDetailRepo struct{ s *memStore }

var _ storage.OrderDetailStorage = (*fakeDetailRepo)(nil)

func (f *fakeDetailRepo) CreateDetailTx(ctx context.Context, tx *sql.Tx, d *models.OrderDetail) error {
	f.s.details[d.ID] = d
	return nil
}

func (f *fakeDetailRepo) GetDetailByID(ctx context.Context, id string) (*models.OrderDetail, error) {
	d, ok := f.s.details[id]
	if !ok {
		return nil, storage.ErrOrderDetailNotFound
	}
	return d, nil
}

func (f *fakeDetailRepo) GetDetailTx(ctx context.Context, tx *sql.Tx, id string) (*models.OrderDetail, error) {
	return f.GetDetailByID(ctx, id)
}

func (f *fakeDetailRepo) ListByOrder(ctx context.Context, orderID string) ([]*models.OrderDetail, error) {
	var out []*models.OrderDetail
	for _, d := range f.s.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDetailRepo) ListByUser(ctx context.Context, userID string) ([]*models.OrderDetail, error) {
	var out []*models.OrderDetail
	for _, d := range f.s.details {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDetailRepo) UpdateDetailTx(ctx context.Context, tx *sql.Tx, d *models.OrderDetail) error {
	if _, ok := f.s.details[d.ID]; !ok {
		return storage.ErrOrderDetailNotFound
	}
	f.s.details[d.ID] = d
	return nil
}

func (f *fakeDetailRepo) DeleteDetailTx(ctx context.Context, tx *sql.Tx, id string) error {
	if _, ok := f.s.details[id]; !ok {
		return storage.ErrOrderDetailNotFound
	}
	delete(f.s.details, id)
	return nil
}

func (f *fakeDetailRepo) DeleteByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	for id, d := range f.s.details {
		if d.OrderID == orderID {
			delete(f.s.details, id)
		}
	}
	return nil
}

type fakePaymentRepo struct{ s *memStore }

var _ storage.PaymentStorage = (*fakePaymentRepo)(nil)

func (f *fakePaymentRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	f.s.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	p, ok := f.s.payments[id]
	if !ok {
		return nil, storage.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, paymentID, status string) (*models.Payment, error) {
	p, ok := f.s.payments[paymentID]
	if !ok {
		return nil, storage.ErrPaymentNotFound
	}
	p.Status = status
	return p, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// seedCatalog наполняет каталог товаром 50.00 с остатком 10 на размере 42
func seedCatalog(s *memStore) {
	s.products["prod-1"] = &models.Product{ID: "prod-1", Name: "Air Max 90", Brand: "Nike", Price: 50.00, Stock: 10}
	s.sizes["prod-1/42"] = &models.ProductSize{ID: "size-1", ProductID: "prod-1", Size: "42", Stock: 10}
	s.products["prod-2"] = &models.Product{ID: "prod-2", Name: "Classic Leather", Brand: "Reebok", Price: 30.00, Stock: 5}
	s.sizes["prod-2/40"] = &models.ProductSize{ID: "size-2", ProductID: "prod-2", Size: "40", Stock: 5}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	seedCatalog(store)

	svc := service.NewOrderService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})

	mock.ExpectBegin()
	mock.ExpectCommit()

	order, err := svc.CreateOrder(context.Background(), "user-1", service.CreateOrderInput{
		OrderDate:    time.Now(),
		PromisedDate: time.Now().AddDate(0, 0, 7),
		Address:      "221B Baker Street",
		ProductID:    "prod-1",
		Size:         "42",
		Quantity:     2,
	})
	assert.NoError(t, err)
	assert.NotNil(t, order)

	// Сумма заказа: 2 × 50.00, остаток размера списан 10 → 8.
	assert.Equal(t, 100.00, store.orders[order.ID].TotalAmount)
	assert.Equal(t, 8, store.sizes["prod-1/42"].Stock)

	// Цена зафиксирована в позиции на момент покупки.
	details, _ := (&fakeDetailRepo{store}).ListByOrder(context.Background(), order.ID)
	assert.Len(t, details, 1)
	assert.Equal(t, 50.00, details[0].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	seedCatalog(store)

	svc := service.NewOrderService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.CreateOrder(context.Background(), "user-1", service.CreateOrderInput{
		OrderDate:    time.Now(),
		PromisedDate: time.Now().AddDate(0, 0, 7),
		Address:      "221B Baker Street",
		ProductID:    "prod-1",
		Size:         "42",
		Quantity:     999,
	})
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)

	// Остаток не тронут.
	assert.Equal(t, 10, store.sizes["prod-1/42"].Stock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_DeleteOrder_RemovesDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	seedCatalog(store)
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", TotalAmount: 130.00}
	store.details["detail-1"] = &models.OrderDetail{
		ID: "detail-1", OrderID: "order-1", ProductID: "prod-1",
		Size: "42", Quantity: 2, Price: 50.00, UserID: "user-1",
	}
	store.details["detail-2"] = &models.OrderDetail{
		ID: "detail-2", OrderID: "order-1", ProductID: "prod-2",
		Size: "40", Quantity: 1, Price: 30.00, UserID: "user-1",
	}

	svc := service.NewOrderService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = svc.DeleteOrder(context.Background(), "order-1")
	assert.NoError(t, err)

	// Заказ удален вместе со всеми позициями.
	_, err = svc.GetOrderByID(context.Background(), "order-1")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	details, err := (&fakeDetailRepo{store}).ListByOrder(context.Background(), "order-1")
	assert.NoError(t, err)
	assert.Empty(t, details)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_GetCurrentOrder_PicksLatestIncomplete(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	now := time.Now()
	// Завершённый заказ свежее всех, но корзиной быть не может.
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", OrderDate: now.AddDate(0, 0, -3)}
	store.orders["order-2"] = &models.Order{ID: "order-2", UserID: "user-1", OrderDate: now.AddDate(0, 0, -1)}
	store.orders["order-3"] = &models.Order{ID: "order-3", UserID: "user-1", OrderDate: now, IsComplete: true}

	svc := service.NewOrderService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})

	order, err := svc.GetCurrentOrder(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-2", order.ID)

	_, err = svc.GetCurrentOrder(context.Background(), "user-2")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestDetailService_AddAndRemove_RecalculatesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	seedCatalog(store)

	orderSvc := service.NewOrderService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})
	detailSvc := service.NewOrderDetailService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})

	mock.ExpectBegin()
	mock.ExpectCommit()

	order, err := orderSvc.CreateOrder(context.Background(), "user-1", service.CreateOrderInput{
		OrderDate:    time.Now(),
		PromisedDate: time.Now().AddDate(0, 0, 7),
		Address:      "221B Baker Street",
		ProductID:    "prod-1",
		Size:         "42",
		Quantity:     2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 100.00, store.orders[order.ID].TotalAmount)

	// Добавляем вторую позицию на 30.00 — сумма 130.00.
	mock.ExpectBegin()
	mock.ExpectCommit()

	detail, err := detailSvc.AddDetail(context.Background(), order.ID, "user-1", service.AddDetailInput{
		ProductID: "prod-2",
		Size:      "40",
		Quantity:  1,
	})
	assert.NoError(t, err)
	assert.Equal(t, 130.00, store.orders[order.ID].TotalAmount)
	assert.Equal(t, 4, store.sizes["prod-2/40"].Stock)

	// Удаляем её — сумма возвращается к 100.00.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err = detailSvc.DeleteDetail(context.Background(), detail.ID)
	assert.NoError(t, err)
	assert.Equal(t, 100.00, store.orders[order.ID].TotalAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetailService_UpdateQuantity_RecalculatesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	seedCatalog(store)
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", TotalAmount: 100.00}
	store.details["detail-1"] = &models.OrderDetail{
		ID: "detail-1", OrderID: "order-1", ProductID: "prod-1",
		Size: "42", Quantity: 2, Price: 50.00, UserID: "user-1",
	}

	detailSvc := service.NewOrderDetailService(testLogger(), db,
		&fakeOrderRepo{store}, &fakeDetailRepo{store}, &fakeProductRepo{store}, &fakeSizeRepo{store})

	mock.ExpectBegin()
	mock.ExpectCommit()

	newQty := 3
	detail, err := detailSvc.UpdateDetail(context.Background(), "detail-1", service.DetailPatch{Quantity: &newQty})
	assert.NoError(t, err)
	assert.Equal(t, 3, detail.Quantity)
	// Цена позиции не меняется, сумма пересчитана: 3 × 50.00.
	assert.Equal(t, 50.00, detail.Price)
	assert.Equal(t, 150.00, store.orders["order-1"].TotalAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_CompletedPaymentClosesOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", TotalAmount: 100.00}

	svc := service.NewPaymentService(testLogger(), db, &fakeOrderRepo{store}, &fakePaymentRepo{store})

	payment, err := svc.CreatePayment(context.Background(), "order-1", 100.00, "card")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.False(t, store.orders["order-1"].IsComplete)

	mock.ExpectBegin()
	mock.ExpectCommit()

	updated, err := svc.UpdateStatus(context.Background(), "order-1", payment.ID, models.PaymentStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
	// Заказ закрывается только успешным платежом.
	assert.True(t, store.orders["order-1"].IsComplete)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_FailedPaymentKeepsOrderOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", TotalAmount: 100.00}

	svc := service.NewPaymentService(testLogger(), db, &fakeOrderRepo{store}, &fakePaymentRepo{store})

	payment, err := svc.CreatePayment(context.Background(), "order-1", 100.00, "card")
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	updated, err := svc.UpdateStatus(context.Background(), "order-1", payment.ID, models.PaymentStatusFailed)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, updated.Status)
	assert.False(t, store.orders["order-1"].IsComplete)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_CompletedOrderRejectsNewPayment(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", TotalAmount: 100.00, IsComplete: true}

	svc := service.NewPaymentService(testLogger(), db, &fakeOrderRepo{store}, &fakePaymentRepo{store})

	_, err = svc.CreatePayment(context.Background(), "order-1", 100.00, "card")
	assert.ErrorIs(t, err, service.ErrOrderCompleted)
}

func TestAuthService_SignUpAndLogin(t *testing.T) {
	store := newMemStore()
	repo := &fakeUserRepo{store}
	authSvc := service.NewAuthService(testLogger(), repo, "testsecret", 2*time.Hour)
	ctx := context.Background()

	user, token, err := authSvc.SignUp(ctx, service.SignUpInput{
		FirstName:   "Test",
		LastName:    "User",
		Email:       "test@example.com",
		Password:    "password123",
		PhoneNumber: "03001234567",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// Проверяем, что пароль хэширован (не равен исходному паролю)
	assert.NotEqual(t, "password123", string(user.PassHash))
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PassHash, []byte("password123")))

	_, token, err = authSvc.Login(ctx, "test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = authSvc.Login(ctx, "test@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = authSvc.Login(ctx, "unknown@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_AdminLogin_RejectsRegularUser(t *testing.T) {
	store := newMemStore()
	repo := &fakeUserRepo{store}
	authSvc := service.NewAuthService(testLogger(), repo, "testsecret", 2*time.Hour)
	ctx := context.Background()

	_, _, err := authSvc.SignUp(ctx, service.SignUpInput{
		FirstName:   "Regular",
		LastName:    "User",
		Email:       "user@example.com",
		Password:    "password123",
		PhoneNumber: "03001234567",
	})
	assert.NoError(t, err)

	_, _, err = authSvc.AdminLogin(ctx, "user@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrNotAdmin)
}

func TestUserService_UpdateUser_PartialPatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	store.users["user-1"] = &models.User{
		ID: "user-1", FirstName: "Old", LastName: "Name",
		Email: "old@example.com", PassHash: hash, PhoneNumber: "03001234567",
	}

	svc := service.NewUserService(testLogger(), db, &fakeUserRepo{store})

	mock.ExpectBegin()
	mock.ExpectCommit()

	newName := "New"
	user, err := svc.UpdateUser(context.Background(), "user-1", service.UserPatch{FirstName: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
	// Незаполненные поля патча не трогаются.
	assert.Equal(t, "old@example.com", user.Email)
	assert.Equal(t, "03001234567", user.PhoneNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}
