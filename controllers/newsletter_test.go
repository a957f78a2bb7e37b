package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSubscribe(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	body := `{"email":"jane@example.com"}`

	mt.Run("welcome sent", func(mt *mtest.T) {
		nc := &NewsLetterController{Collection: mt.Coll, EmailService: &stubMailer{}}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
		rec := httptest.NewRecorder()
		nc.Subscribe(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	mt.Run("welcome failure surfaces as 500", func(mt *mtest.T) {
		nc := &NewsLetterController{
			Collection:   mt.Coll,
			EmailService: &stubMailer{err: errors.New("provider unavailable")},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
		rec := httptest.NewRecorder()
		nc.Subscribe(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	mt.Run("duplicate subscription rejected", func(mt *mtest.T) {
		nc := &NewsLetterController{Collection: mt.Coll, EmailService: &stubMailer{}}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
		rec := httptest.NewRecorder()
		nc.Subscribe(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	nc := &NewsLetterController{}

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter",
		strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	nc.Subscribe(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
