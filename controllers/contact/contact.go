package contactControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/services"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitMessage stores a contact-form message and notifies the shop inbox.
// POST /contact
func SubmitMessage(messages *services.MessagesService, mailer *services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msg, err := messages.Create(c.Request.Context(), models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Subject: input.Subject,
			Message: input.Message,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		// The inbox copy is best effort; the message is already stored.
		if err := mailer.NotifyContactMessage(msg); err != nil {
			log.Printf("⚠️ Failed to email contact notification: %v", err)
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "id": msg.ID})
	}
}

// GET /admin/messages
func GetAllMessages(messages *services.MessagesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := messages.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// PUT /admin/messages/:id/read
func MarkMessageRead(messages *services.MessagesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := messages.MarkRead(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
	}
}

// DELETE /admin/messages/:id
func DeleteMessage(messages *services.MessagesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	}
}
