package services_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"checkout/internal/models"
	"checkout/internal/notify"
	"checkout/internal/pricing"
	"checkout/internal/repositories"
	"checkout/internal/services"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

// failNotifier always fails and counts how often it was asked to send.
type failNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *failNotifier) SendOrderConfirmation(order *models.Order, totals pricing.Totals) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return fmt.Errorf("transport unavailable")
}

// failPublisher always fails to publish.
type failPublisher struct {
	calls int
}

func (p *failPublisher) Publish(eventType string, body []byte) error {
	p.calls++
	return fmt.Errorf("broker unavailable")
}

func validSession() *models.CheckoutSession {
	sess := models.NewCheckoutSession([]models.CartItem{
		{ProductName: "Blue T-Shirt", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00"), Color: "Blue"},
		{ProductName: "Red Hat", Quantity: 1, UnitPrice: decimal.RequireFromString("15.00"), Color: "Red"},
	})
	sess.BillingDetails = models.BillingDetails{
		FirstName:  "Jane",
		LastName:   "Doe",
		Address:    "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Phone:      "+1 555 123 4567",
		Email:      "jane@example.com",
		Country:    "USA",
	}
	sess.ShippingDetails = models.ShippingDetails{
		Address:    "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
	}
	sess.SelectedPaymentMethod = models.PaymentCreditCard
	return sess
}

func newService(repo repositories.OrderRepository) *services.CheckoutService {
	calc := pricing.NewCalculator(
		decimal.RequireFromString("0.10"),
		decimal.RequireFromString("5.00"),
	)
	return services.NewCheckoutService(repo, calc, nil, nil)
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newService(mockRepo)
	sess := validSession()

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, totals, err := service.PlaceOrder(sess)

	assert.NoError(t, err)
	assert.Equal(t, sess.OrderNumber, order.OrderNumber)
	assert.Equal(t, "Jane Doe", order.CustomerName)
	assert.Equal(t, "jane@example.com", order.CustomerEmail)
	assert.Equal(t, "CreditCard", order.PaymentMethod)
	assert.Equal(t, "76.50", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "76.50", totals.Total.StringFixed(2))
	assert.Len(t, order.Items, 2)
	mockRepo.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_ConfirmedDespiteNotificationFailures(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	calc := pricing.NewCalculator(decimal.Zero, decimal.Zero)
	email := &failNotifier{}
	chat := &failNotifier{}
	broker := &failPublisher{}
	service := services.NewCheckoutService(mockRepo, calc, []notify.Notifier{email, chat}, broker)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, _, err := service.PlaceOrder(validSession())

	assert.NoError(t, err)
	assert.NotNil(t, order)
	// Both channels were attempted even though each failed.
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, chat.calls)
	assert.Equal(t, 1, broker.calls)
	mockRepo.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_ValidationRejectsMissingBillingField(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newService(mockRepo)

	sess := validSession()
	sess.BillingDetails.Email = ""
	before := *sess

	order, _, err := service.PlaceOrder(sess)

	assert.Nil(t, order)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "Email")

	// The submitted session is handed back untouched for re-display.
	assert.Equal(t, before, *sess)

	// Nothing was persisted.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutService_PlaceOrder_ValidationRejectsEmptyCart(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newService(mockRepo)

	sess := validSession()
	sess.CartItems = nil

	order, _, err := service.PlaceOrder(sess)

	assert.Nil(t, order)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "CartItems")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutService_PlaceOrder_ValidationRejectsBadPhone(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newService(mockRepo)

	sess := validSession()
	sess.BillingDetails.Phone = "not-a-phone"

	_, _, err := service.PlaceOrder(sess)

	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "Phone")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutService_PlaceOrder_StoreFailure(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	email := &failNotifier{}
	calc := pricing.NewCalculator(decimal.Zero, decimal.Zero)
	service := services.NewCheckoutService(mockRepo, calc, []notify.Notifier{email}, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(fmt.Errorf("connection refused")).Once()

	order, _, err := service.PlaceOrder(validSession())

	assert.Nil(t, order)
	var storeErr *services.StoreError
	assert.ErrorAs(t, err, &storeErr)
	// A failed commit sends nothing.
	assert.Equal(t, 0, email.calls)
	mockRepo.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_CreateCalledOncePerSubmission(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	_, _, err := service.PlaceOrder(validSession())
	assert.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutService_ConcurrentSubmissions(t *testing.T) {
	repo := repositories.NewMemoryOrderRepository()
	service := newService(repo)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*models.Order, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := validSession()
			sess.CartItems[0].Quantity = i + 1
			order, _, err := service.PlaceOrder(sess)
			assert.NoError(t, err)
			results[i] = order
		}(i)
	}
	wg.Wait()

	numbers := make(map[string]bool)
	for i, order := range results {
		assert.NotNil(t, order)
		numbers[order.OrderNumber] = true

		// Each aggregate survived intact.
		stored, err := repo.GetByOrderNumber(order.OrderNumber)
		assert.NoError(t, err)
		assert.Len(t, stored.Items, 2)
		assert.Equal(t, i+1, stored.Items[0].Quantity)
		assert.True(t, stored.TotalAmount.Equal(order.TotalAmount))
	}
	assert.Len(t, numbers, n)
}

func TestBuildOrder(t *testing.T) {
	sess := validSession()
	calc := pricing.NewCalculator(decimal.Zero, decimal.Zero)
	totals := calc.Totals(sess.CartItems)

	order := services.BuildOrder(sess, totals)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, sess.OrderNumber, order.OrderNumber)
	assert.Equal(t, "Jane Doe", order.CustomerName)
	assert.Equal(t, "CreditCard", order.PaymentMethod)
	assert.Equal(t, "65.00", order.TotalAmount.StringFixed(2))
	assert.False(t, order.OrderDate.IsZero())
	assert.Equal(t, sess.BillingDetails, order.Billing)
	assert.Equal(t, sess.ShippingDetails, order.Shipping)
	assert.Len(t, order.Items, len(sess.CartItems))
	assert.Equal(t, "50.00", order.Items[0].LineTotal.StringFixed(2))
}
