package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPendingOrderCookieRoundTrip(t *testing.T) {
	pending := models.PendingOrder{
		CartID:    primitive.NewObjectID().Hex(),
		AddressID: primitive.NewObjectID().Hex(),
	}

	encoded, err := EncodePendingOrder(pending)
	require.NoError(t, err)

	decoded, err := DecodePendingOrder(encoded)
	require.NoError(t, err)
	assert.Equal(t, pending, decoded)
}

func TestDecodePendingOrderRejectsMissingFields(t *testing.T) {
	encoded, err := EncodePendingOrder(models.PendingOrder{CartID: "abc"})
	require.NoError(t, err)

	_, err = DecodePendingOrder(encoded)
	assert.Error(t, err)
}

func TestDecodePendingOrderRejectsGarbage(t *testing.T) {
	_, err := DecodePendingOrder("not base64 json!!")
	assert.Error(t, err)
}

func TestGetPendingOrderWithoutCookie(t *testing.T) {
	oc := &OrderController{}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/pending", nil)
	rec := httptest.NewRecorder()
	oc.GetPendingOrder(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetOrderHistoryWithoutCookie(t *testing.T) {
	oc := &OrderController{}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/history", nil)
	rec := httptest.NewRecorder()
	oc.GetOrderHistory(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Msg)
}

func TestGetOrderHistoryWithTamperedToken(t *testing.T) {
	oc := &OrderController{}

	token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "user@example.com", models.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/history", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token + "tampered"})
	rec := httptest.NewRecorder()
	oc.GetOrderHistory(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetOrderHistoryWithTokenLackingUserID(t *testing.T) {
	oc := &OrderController{}

	token, err := utils.GenerateJWT("", "user@example.com", models.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/history", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	oc.GetOrderHistory(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateInvoiceNo(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	invoiceNo := generateInvoiceNo(now)

	assert.True(t, strings.HasPrefix(invoiceNo, "INV-20250314-"))
	assert.Len(t, invoiceNo, len("INV-20250314-")+8)
	assert.NotEqual(t, invoiceNo, generateInvoiceNo(now))
}
