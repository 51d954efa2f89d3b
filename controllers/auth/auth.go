package authControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/auth"
	"github.com/atelierline/storefront-api/middleware"
	"github.com/atelierline/storefront-api/session"
	"github.com/atelierline/storefront-api/store"
)

type SignUpInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleSignInInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

type CheckSessionInput struct {
	IDToken string `json:"id_token"`
}

// StartSession opens a fresh browsing session and returns its bearer token.
// The same token serves guests and signed-in users; it scopes the cart, the
// auth state and the checkout flow.
// POST /auth/guest
func StartSession(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := mgr.Create()

		token, err := auth.IssueSessionToken(sess.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_token": token,
			"expires_in":    int(auth.SessionTTL.Seconds()),
		})
	}
}

// SignUp creates an account and signs the browsing session in.
// POST /auth/signup
func SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			return
		}

		var input SignUpInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := sess.Auth.SignUp(c.Request.Context(), store.SignUpInput{
			Email:       input.Email,
			Password:    input.Password,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			PhoneNumber: input.PhoneNumber,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, authState(sess))
	}
}

// SignIn authenticates the browsing session with email and password. The
// session's cart survives sign-in, so a guest cart follows the user in.
// POST /auth/signin
func SignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			return
		}

		var input SignInInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := sess.Auth.SignIn(c.Request.Context(), input.Email, input.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, authState(sess))
	}
}

// SignInWithGoogle authenticates the session with a Google-issued ID token.
// POST /auth/google
func SignInWithGoogle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			return
		}

		var input GoogleSignInInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := sess.Auth.SignInWithGoogle(c.Request.Context(), input.IDToken); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, authState(sess))
	}
}

// SignOut clears the session's auth state and revokes refresh tokens.
// POST /auth/signout
func SignOut() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			return
		}

		if err := sess.Auth.SignOut(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, authState(sess))
	}
}

// CheckSession runs the one-shot initial auth probe for the session, using a
// previously issued provider ID token if the client still holds one.
// POST /auth/session
func CheckSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			return
		}

		var input CheckSessionInput
		// An empty body is a valid signed-out probe.
		_ = c.ShouldBindJSON(&input)

		sess.Auth.CheckSession(c.Request.Context(), input.IDToken)
		c.JSON(http.StatusOK, authState(sess))
	}
}

func authState(sess *session.Session) gin.H {
	return gin.H{
		"user":          sess.Auth.User(),
		"authenticated": sess.Auth.IsAuthenticated(),
		"is_admin":      sess.Auth.IsAdmin(),
		"loading":       sess.Auth.Loading(),
		"error":         sess.Auth.Err(),
	}
}
