package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ToolScope lets an agent call the referee tools and nothing else.
	ToolScope = "tools"
	// OperatorScope is required for game lifecycle and audit routes.
	OperatorScope = "operator"
)

var (
	ErrInvalidAgentToken = errors.New("invalid agent token")
	ErrInsufficientScope = fmt.Errorf("%w: insufficient scope", ErrInvalidAgentToken)
)

// AgentTokens issues and checks the bearer tokens presented to the HTTP
// routes. Agents get ToolScope tokens; operators get OperatorScope ones.
type AgentTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewAgentTokens(secret string, ttl time.Duration) (*AgentTokens, error) {
	if secret == "" {
		return nil, errors.New("agent token secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AgentTokens{secret: []byte(secret), ttl: ttl}, nil
}

// Generate issues a tool-scoped token for agentID.
func (a *AgentTokens) Generate(agentID string) (string, error) {
	return a.GenerateScoped(agentID, ToolScope)
}

func (a *AgentTokens) GenerateScoped(subject, scope string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": scope,
		"exp":   now.Add(a.ttl).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Parse validates a tool-scoped tokenString and returns the agent id it was
// issued to.
func (a *AgentTokens) Parse(tokenString string) (string, error) {
	return a.ParseScoped(tokenString, ToolScope)
}

// ParseScoped validates tokenString and requires it to carry scope. A valid
// token with another scope yields ErrInsufficientScope.
func (a *AgentTokens) ParseScoped(tokenString, scope string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return "", ErrInvalidAgentToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidAgentToken
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", ErrInvalidAgentToken
	}
	if got, _ := claims["scope"].(string); got != scope {
		return "", ErrInsufficientScope
	}
	return subject, nil
}
