package services

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// QRTokenType is the single claim literal used on both issue and verify,
// for check-in and check-out alike.
const QRTokenType = "store_checkin"

// defaultQRTokenTTL is intentionally long: the token is printed as a kiosk
// placard and stays valid until staff explicitly regenerate it.
const defaultQRTokenTTL = 10 * 365 * 24 * time.Hour

// QRTokenService issues and verifies the store-scoped kiosk credential the
// mini-app scans at check-in and check-out.
type QRTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewQRTokenService() *QRTokenService {
	secret := os.Getenv("QR_TOKEN_SECRET")
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	return &QRTokenService{
		secret: []byte(secret),
		ttl:    defaultQRTokenTTL,
	}
}

// Issue produces the signed kiosk token for a store.
func (s *QRTokenService) Issue(storeID uuid.UUID) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("QR_TOKEN_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"storeId": storeID.String(),
		"type":    QRTokenType,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify checks signature, expiry and token type, returning the store the
// token is bound to.
func (s *QRTokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != QRTokenType {
		return uuid.Nil, ErrInvalidToken
	}

	storeIDStr, _ := claims["storeId"].(string)
	storeID, err := uuid.Parse(storeIDStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return storeID, nil
}

// VerifyForStore additionally checks the store binding.
func (s *QRTokenService) VerifyForStore(tokenString string, expectedStoreID uuid.UUID) error {
	storeID, err := s.Verify(tokenString)
	if err != nil {
		return err
	}
	if storeID != expectedStoreID {
		return ErrStoreMismatch
	}
	return nil
}
