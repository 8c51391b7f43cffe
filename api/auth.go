package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

type TokenClaims struct {
	Subject   string  `json:"sub"`
	Email     *string `json:"email"`
	ExpiresAt int64   `json:"exp"`
	IssuedAt  int64   `json:"iat"`
}

func parseToken(jwtStr string, decodeToken string) (*TokenClaims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(decodeToken), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("error marshalling claims: %w", err)
	}

	var parsed TokenClaims
	if err := json.Unmarshal(claimsJSON, &parsed); err != nil {
		return nil, fmt.Errorf("error unmarshalling claims: %w", err)
	}
	if parsed.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &parsed, nil
}

// external user id, either the token subject or the user_id field the
// dashboard sends
func (m ApiHandler) externalUserID(c *gin.Context) (string, error) {
	if m.JwtDecodeToken != "" {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return "", fmt.Errorf("missing bearer token")
		}
		claims, err := parseToken(tokenStr, m.JwtDecodeToken)
		if err != nil {
			return "", err
		}
		return claims.Subject, nil
	}

	if userID := c.Query("user_id"); userID != "" {
		return userID, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	type userIDBody struct {
		UserID json.RawMessage `json:"user_id"`
	}
	reqBody := userIDBody{}
	if len(body) > 0 {
		// a body that isn't an object is the resolver's problem
		_ = json.Unmarshal(body, &reqBody)
	}
	userID := strings.Trim(strings.TrimSpace(string(reqBody.UserID)), `"`)
	if userID == "" || userID == "null" {
		return "", fmt.Errorf("missing user_id")
	}
	return userID, nil
}

func (m ApiHandler) authMiddleware(c *gin.Context) {
	externalID, err := m.externalUserID(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}

	account, err := m.AccountService.Resolve(c.Request.Context(), externalID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Set("userAccountID", account.UserAccountID.String())
	c.Next()
}

func userAccountIDFromGin(c *gin.Context) (uuid.UUID, bool) {
	ginUserAccountID, ok := c.Get("userAccountID")
	if !ok {
		return uuid.Nil, false
	}
	userAccountIDStr, ok := ginUserAccountID.(string)
	if !ok {
		return uuid.Nil, false
	}
	userAccountID, err := uuid.Parse(userAccountIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userAccountID, true
}

func requireUserAccountID(c *gin.Context) (uuid.UUID, bool) {
	userAccountID, ok := userAccountIDFromGin(c)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("must be logged in"), c, http.StatusUnauthorized)
	}
	return userAccountID, ok
}
