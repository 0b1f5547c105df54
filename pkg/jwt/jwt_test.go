package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestVerify_RoundTrip(t *testing.T) {
	v := NewVerifier("secret-1", "issuer", "meeting-recovery", 0)

	token, err := v.Sign(Identity{Subject: "auth|42", Email: "a@example.com", Name: "Ada"}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	id, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Subject != "auth|42" || id.Email != "a@example.com" || id.Name != "Ada" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestVerify_Rejects(t *testing.T) {
	v := NewVerifier("secret-1", "", "", 0)

	expired, _ := v.Sign(Identity{Subject: "u1"}, -time.Minute)
	if _, err := v.Verify(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expired error got %v", err)
	}

	other := NewVerifier("secret-2", "", "", 0)
	forged, _ := other.Sign(Identity{Subject: "u1"}, time.Minute)
	if _, err := v.Verify(forged); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected invalid signature error got %v", err)
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("build unsigned token: %v", err)
	}
	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected unsigned token to be rejected got %v", err)
	}

	if _, err := v.Verify("  "); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected missing token error got %v", err)
	}
}

func TestVerify_AudienceMismatch(t *testing.T) {
	signer := NewVerifier("secret-1", "", "other-app", 0)
	token, _ := signer.Sign(Identity{Subject: "u1"}, time.Minute)

	v := NewVerifier("secret-1", "", "meeting-recovery", 0)
	if _, err := v.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected audience mismatch to be rejected got %v", err)
	}
}
