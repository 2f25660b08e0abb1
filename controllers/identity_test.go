package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestCurrentIdentityStaff(t *testing.T) {
	c, _ := newTestContext(t)
	storeID := uuid.New()
	userID := uuid.New()
	c.Set("storeId", storeID.String())
	c.Set("role", utils.RoleStaff)
	c.Set("userId", userID.String())

	identity, ok := currentIdentity(c)
	if !ok {
		t.Fatal("expected identity extraction to succeed")
	}
	if !identity.IsStaff() || identity.StoreID != storeID || identity.UserID != userID {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestCurrentIdentityOwner(t *testing.T) {
	c, _ := newTestContext(t)
	storeID := uuid.New()
	ownerID := uuid.New()
	c.Set("storeId", storeID.String())
	c.Set("role", utils.RoleOwner)
	c.Set("ownerId", ownerID.String())

	identity, ok := currentIdentity(c)
	if !ok {
		t.Fatal("expected identity extraction to succeed")
	}
	if !identity.IsOwner() || identity.StoreID != storeID || identity.OwnerID != ownerID {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

// Requests that skipped the auth middleware, or carry broken claims, must get
// a 401 and never panic.
func TestCurrentIdentityBrokenClaims(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *gin.Context)
	}{
		{name: "no claims at all", setup: func(c *gin.Context) {}},
		{name: "store id only", setup: func(c *gin.Context) {
			c.Set("storeId", uuid.NewString())
		}},
		{name: "non-string store id", setup: func(c *gin.Context) {
			c.Set("storeId", 42)
		}},
		{name: "non-string role", setup: func(c *gin.Context) {
			c.Set("storeId", uuid.NewString())
			c.Set("role", 42)
		}},
		{name: "unknown role", setup: func(c *gin.Context) {
			c.Set("storeId", uuid.NewString())
			c.Set("role", "superuser")
		}},
		{name: "staff without user id", setup: func(c *gin.Context) {
			c.Set("storeId", uuid.NewString())
			c.Set("role", utils.RoleStaff)
		}},
		{name: "owner without owner id", setup: func(c *gin.Context) {
			c.Set("storeId", uuid.NewString())
			c.Set("role", utils.RoleOwner)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			tt.setup(c)

			_, ok := currentIdentity(c)
			if ok {
				t.Fatal("expected identity extraction to fail")
			}
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}
