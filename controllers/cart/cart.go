package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderControllers "github.com/atelierline/storefront-api/controllers/order"
	"github.com/atelierline/storefront-api/middleware"
	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/session"
	"github.com/atelierline/storefront-api/store"
)

type AddLineInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
}

type SetQuantityInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func currentSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return sess, true
}

func cartState(sess *session.Session) gin.H {
	return gin.H{
		"items":   sess.Cart.Lines(),
		"is_open": sess.Cart.IsOpen(),
		"total":   sess.Cart.Total(),
	}
}

// GET /cart
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartState(sess))
	}
}

// POST /cart
func AddLine(catalog *store.CatalogStore, products *services.ProductsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var input AddLineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Resolve the product from the in-memory catalog, falling back to
		// the backend for a cold store.
		product, found := catalog.Find(input.ProductID)
		if !found {
			fetched, err := products.Get(c.Request.Context(), input.ProductID)
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
				return
			}
			product = fetched
		}

		sess.Cart.AddLine(product, input.Size)
		c.JSON(http.StatusOK, cartState(sess))
	}
}

// PUT /cart
func SetQuantity() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sess.Cart.SetQuantity(input.ProductID, input.Size, input.Quantity)
		c.JSON(http.StatusOK, cartState(sess))
	}
}

// DELETE /cart/:product_id
func RemoveLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		sess.Cart.RemoveLine(c.Param("product_id"), c.Query("size"))
		c.JSON(http.StatusOK, cartState(sess))
	}
}

// DELETE /cart
func ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		sess.Cart.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /cart/panel/:action — open, close or toggle the cart panel.
func SetPanel() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		switch c.Param("action") {
		case "open":
			sess.Cart.Open()
		case "close":
			sess.Cart.Close()
		case "toggle":
			sess.Cart.Toggle()
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown panel action"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_open": sess.Cart.IsOpen()})
	}
}

// POST /cart/checkout
//
// A signed-in session checks out with its stored profile; otherwise the
// request body must carry guest contact details. On success the cart is
// cleared and the confirmation (with its short order reference) returned.
func Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var (
			conf store.Confirmation
			err  error
		)

		if user := sess.Auth.User(); user != nil {
			conf, err = sess.Checkout.SubmitAuthenticated(c.Request.Context(), *user)
		} else {
			var contact store.ContactDetails
			if bindErr := c.ShouldBindJSON(&contact); bindErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + bindErr.Error()})
				return
			}
			conf, err = sess.Checkout.SubmitGuest(c.Request.Context(), contact)
		}

		if err != nil {
			var vErr *store.ValidationError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Fields})
			case errors.Is(err, store.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		orderControllers.BroadcastNewOrder(conf.Order)
		c.JSON(http.StatusCreated, conf)
	}
}

// GET /cart/confirmation — the pending checkout confirmation, if any. It
// auto-dismisses after a fixed delay.
func GetConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		conf := sess.Checkout.Confirmation()
		if conf == nil {
			c.JSON(http.StatusOK, gin.H{"confirmation": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"confirmation": conf})
	}
}
