package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/shopspring/decimal"

	"checkout/internal/models"
	"checkout/internal/services"
)

// Session keys for the cart blob and the one-shot confirmation handoff.
const (
	cartKey          = "cart"
	orderNumberKey   = "order_number"
	customerNameKey  = "customer_name"
	customerEmailKey = "customer_email"
	orderTotalKey    = "order_total"
)

// CheckoutHandler handles the single-page checkout flow.
type CheckoutHandler struct {
	service *services.CheckoutService
	store   *session.Store
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService, store *session.Store) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		store:   store,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/", h.HandleCheckout)
	checkoutRoutes.Post("/place-order", h.HandlePlaceOrder)
	checkoutRoutes.Get("/confirmation", h.HandleConfirmation)
}

// HandleCheckout returns the current checkout session: the session cart (a
// demo cart is seeded when none exists), a fresh order number and the pricing
// figures.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load checkout session",
		})
	}

	items := h.sessionCart(sess)
	if len(items) == 0 {
		items = demoCart()
	}
	h.setCart(sess, items)
	// Save releases the session instance, so it runs once per request.
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	model := models.NewCheckoutSession(items)
	return c.JSON(fiber.Map{
		"session": model,
		"totals":  h.service.Totals(items),
	})
}

// HandlePlaceOrder accepts a submitted checkout session and runs the order
// workflow. Validation failures echo the submitted data back with per-field
// messages; store failures collapse to one generic message.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var submitted models.CheckoutSession
	if err := c.BodyParser(&submitted); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load checkout session",
		})
	}

	// Submissions without an explicit cart fall back to the session cart.
	if len(submitted.CartItems) == 0 {
		submitted.CartItems = h.sessionCart(sess)
	}
	h.setCart(sess, submitted.CartItems)

	order, totals, err := h.service.PlaceOrder(&submitted)
	if err != nil {
		if saveErr := sess.Save(); saveErr != nil {
			log.Printf("Error saving session: %v", saveErr)
		}
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			log.Printf("Invalid checkout submission for order %s", submitted.OrderNumber)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErr.Fields,
				"session": submitted,
			})
		}
		// Cause already logged by the workflow; users get one generic
		// message for any persistence failure.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "An error occurred while processing your order. Please try again.",
		})
	}

	sess.Set(orderNumberKey, order.OrderNumber)
	sess.Set(customerNameKey, order.CustomerName)
	sess.Set(customerEmailKey, order.CustomerEmail)
	sess.Set(orderTotalKey, order.TotalAmount.StringFixed(2))
	if err := sess.Save(); err != nil {
		log.Printf("Error saving confirmation handoff for order %s: %v", order.OrderNumber, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":  order,
		"totals": totals,
	})
}

// HandleConfirmation returns the confirmation handoff exactly once. Visiting
// it without a prior successful submission redirects back to the checkout.
func (h *CheckoutHandler) HandleConfirmation(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Redirect("/checkout", fiber.StatusSeeOther)
	}

	orderNumber, ok := sess.Get(orderNumberKey).(string)
	if !ok || orderNumber == "" {
		return c.Redirect("/checkout", fiber.StatusSeeOther)
	}

	customerName, _ := sess.Get(customerNameKey).(string)
	customerEmail, _ := sess.Get(customerEmailKey).(string)
	orderTotal, _ := sess.Get(orderTotalKey).(string)

	// One-shot handoff: reading the confirmation consumes it.
	sess.Delete(orderNumberKey)
	sess.Delete(customerNameKey)
	sess.Delete(customerEmailKey)
	sess.Delete(orderTotalKey)
	if err := sess.Save(); err != nil {
		log.Printf("Error clearing confirmation handoff: %v", err)
	}

	return c.JSON(fiber.Map{
		"order_number":   orderNumber,
		"customer_name":  customerName,
		"customer_email": customerEmail,
		"order_total":    orderTotal,
	})
}

// sessionCart reads the cart blob out of the session. A missing or corrupt
// blob yields an empty cart.
func (h *CheckoutHandler) sessionCart(sess *session.Session) []models.CartItem {
	blob, ok := sess.Get(cartKey).(string)
	if !ok {
		return nil
	}
	items, err := models.DeserializeCart(blob)
	if err != nil {
		log.Printf("Error reading cart from session: %v", err)
		return nil
	}
	return items
}

// setCart writes the cart blob into the session without saving it; callers
// save once per request.
func (h *CheckoutHandler) setCart(sess *session.Session, items []models.CartItem) {
	blob, err := models.SerializeCart(items)
	if err != nil {
		log.Printf("Error serializing cart: %v", err)
		return
	}
	sess.Set(cartKey, blob)
}

// demoCart seeds a cart for sessions that arrive without one.
func demoCart() []models.CartItem {
	return []models.CartItem{
		{ProductName: "Blue T-Shirt", Quantity: 2, UnitPrice: decimal.NewFromFloat(25.00), Color: "Blue"},
		{ProductName: "Red Hat", Quantity: 1, UnitPrice: decimal.NewFromFloat(15.00), Color: "Red"},
	}
}
