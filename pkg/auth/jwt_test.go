// pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"
)

func TestIssuer_GenerateAndValidate(t *testing.T) {
	issuer := NewIssuer("sandbox-secret", time.Hour)

	token, err := issuer.GenerateToken("demo@glamour.test", "u-42")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Email != "demo@glamour.test" || claims.UserID != "u-42" || claims.Subject != "u-42" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestIssuer_ValidateToken(t *testing.T) {
	good, _ := NewIssuer("secret", time.Hour).GenerateToken("a@b.c", "u-1")
	expired, _ := NewIssuer("secret", -time.Minute).GenerateToken("a@b.c", "u-1")

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "Wrong secret", secret: "other", token: good},
		{name: "Expired", secret: "secret", token: expired},
		{name: "Garbage", secret: "secret", token: "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewIssuer(tt.secret, time.Hour).ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() expected error")
			}
		})
	}
}

func TestInspect(t *testing.T) {
	token, _ := NewIssuer("secret", 2*time.Hour).GenerateToken("a@b.c", "u-1")

	claims, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if claims.UserID != "u-1" || claims.ExpiresAt == nil {
		t.Fatalf("claims = %+v", claims)
	}
	if d := time.Until(claims.ExpiresAt.Time); d < time.Hour {
		t.Errorf("expiry %v from now, want about 2h", d)
	}

	if _, err := Inspect("garbage"); err == nil {
		t.Error("Inspect(garbage) expected error")
	}
}
