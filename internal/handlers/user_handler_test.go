package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/localvibe/localvibe-backend/internal/dto"
)

func TestAuthUserFirstLoginUpsert(t *testing.T) {
	app, _ := newTestApp(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "ext-42",
		"email":       "sam@example.com",
		"given_name":  "Sam",
		"family_name": "Reed",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/auth/user", signed, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("auth user status = %d, want 200", resp.StatusCode)
	}
	user := decode[dto.UserResponse](t, resp)
	if user.ID != "ext-42" || user.FirstName != "Sam" {
		t.Errorf("upserted user = %+v, want id ext-42 name Sam", user)
	}
	if user.AvatarSeed == "" {
		t.Errorf("avatar seed not assigned on first login")
	}

	// Second call returns the same user, no duplicate.
	resp = doJSON(t, app, http.MethodGet, "/api/auth/user", signed, nil)
	again := decode[dto.UserResponse](t, resp)
	if again.AvatarSeed != user.AvatarSeed {
		t.Errorf("avatar seed changed between logins")
	}
}

func TestUpdateProfileEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "user-a")

	resp := doJSON(t, app, http.MethodPut, "/api/users/profile", authToken(t, "user-a"), fiber.Map{
		"location":  "Porto",
		"interests": []string{"surf", "food"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update profile status = %d, want 200", resp.StatusCode)
	}
	user := decode[dto.UserResponse](t, resp)
	if user.Location != "Porto" || len(user.Interests) != 2 {
		t.Errorf("profile = %+v, want location Porto and 2 interests", user)
	}

	// Public profile reflects the edit.
	resp = doJSON(t, app, http.MethodGet, "/api/users/user-a", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get user status = %d, want 200", resp.StatusCode)
	}
	public := decode[dto.UserResponse](t, resp)
	if public.Location != "Porto" {
		t.Errorf("public profile location = %q, want Porto", public.Location)
	}
}

func TestGetUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/users/ghost", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", resp.StatusCode)
	}
}
