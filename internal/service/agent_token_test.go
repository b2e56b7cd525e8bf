package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAgentTokenRoundTrip(t *testing.T) {
	tokens, err := NewAgentTokens("secret", time.Minute)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tok, err := tokens.Generate("agent-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id, err := tokens.Parse(tok)
	if err != nil || id != "agent-1" {
		t.Fatalf("parse = %q, %v", id, err)
	}
}

func TestAgentTokenRejects(t *testing.T) {
	tokens, _ := NewAgentTokens("secret", time.Minute)
	other, _ := NewAgentTokens("other", time.Minute)
	foreign, _ := other.Generate("agent-1")

	wrongScope, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "agent-1",
		"scope": "admin",
		"exp":   time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("secret"))

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "agent-1",
		"scope": ToolScope,
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("secret"))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "agent-1",
		"scope": ToolScope,
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":     "not-a-token",
		"foreign key": foreign,
		"wrong scope": wrongScope,
		"expired":     expired,
		"no expiry":   noExp,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tokens.Parse(tok); !errors.Is(err, ErrInvalidAgentToken) {
				t.Fatalf("err = %v; want ErrInvalidAgentToken", err)
			}
		})
	}
}

func TestScopesAreNotInterchangeable(t *testing.T) {
	tokens, _ := NewAgentTokens("secret", time.Minute)
	agent, _ := tokens.Generate("agent-1")
	operator, _ := tokens.GenerateScoped("ops", OperatorScope)

	if _, err := tokens.ParseScoped(agent, OperatorScope); !errors.Is(err, ErrInsufficientScope) {
		t.Fatalf("tool token as operator: err = %v", err)
	}
	if _, err := tokens.Parse(operator); !errors.Is(err, ErrInsufficientScope) {
		t.Fatalf("operator token as tool: err = %v", err)
	}
	if id, err := tokens.ParseScoped(operator, OperatorScope); err != nil || id != "ops" {
		t.Fatalf("operator parse = %q, %v", id, err)
	}
}

func TestNewAgentTokensRequiresSecret(t *testing.T) {
	if _, err := NewAgentTokens("", time.Minute); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
