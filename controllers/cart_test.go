package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blushbelle-api/middleware"
	"blushbelle-api/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func authenticatedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	claims := &utils.Claims{UserID: primitive.NewObjectID().Hex(), Role: "User"}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

func TestAddToCartCreatesCartOnFirstUse(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first add", func(mt *mtest.T) {
		cc := &CartController{Collection: mt.Coll, ProductCollection: mt.Coll}

		productID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blushbelle.products", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: productID}, {Key: "price", Value: 29.99}}),
			mtest.CreateCursorResponse(0, "blushbelle.carts", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		req := authenticatedRequest(http.MethodPost, "/api/user/cart",
			`{"product":"`+productID.Hex()+`","quantity":2}`)
		rec := httptest.NewRecorder()
		cc.AddToCart(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestAddToCartSurfacesLookupFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("transient cart lookup error", func(mt *mtest.T) {
		cc := &CartController{Collection: mt.Coll, ProductCollection: mt.Coll}

		productID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "blushbelle.products", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: productID}, {Key: "price", Value: 29.99}}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11600,
				Name:    "InterruptedAtShutdown",
				Message: "interrupted at shutdown",
			}),
		)

		req := authenticatedRequest(http.MethodPost, "/api/user/cart",
			`{"product":"`+productID.Hex()+`","quantity":1}`)
		rec := httptest.NewRecorder()
		cc.AddToCart(rec, req)

		// A failed lookup must not be mistaken for an empty cart, or the
		// user ends up with a second cart document.
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	cc := &CartController{}

	req := authenticatedRequest(http.MethodPost, "/api/user/cart",
		`{"product":"`+primitive.NewObjectID().Hex()+`","quantity":0}`)
	rec := httptest.NewRecorder()
	cc.AddToCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
