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

// stubMailer satisfies utils.Mailer and fails every send with err when set.
type stubMailer struct {
	err error
}

func (m *stubMailer) SendOTPEmail(string, string) error           { return m.err }
func (m *stubMailer) SendPasswordResetEmail(string, string) error { return m.err }
func (m *stubMailer) SendNewsletterWelcomeEmail(string) error     { return m.err }
func (m *stubMailer) SendContactAckEmail(string, string) error    { return m.err }
func (m *stubMailer) SendOrderConfirmationEmail(string, string, float64, string) error {
	return m.err
}

func TestCreateContact(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	body := `{"name":"Jane","email":"jane@example.com","message":"Where is my order?"}`

	mt.Run("acknowledgment sent", func(mt *mtest.T) {
		cc := &ContactController{Collection: mt.Coll, EmailService: &stubMailer{}}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		rec := httptest.NewRecorder()
		cc.CreateContact(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	mt.Run("acknowledgment failure surfaces as 500", func(mt *mtest.T) {
		cc := &ContactController{
			Collection:   mt.Coll,
			EmailService: &stubMailer{err: errors.New("provider unavailable")},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		rec := httptest.NewRecorder()
		cc.CreateContact(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	mt.Run("duplicate submission rejected", func(mt *mtest.T) {
		cc := &ContactController{Collection: mt.Coll, EmailService: &stubMailer{}}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		rec := httptest.NewRecorder()
		cc.CreateContact(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCreateContactValidation(t *testing.T) {
	cc := &ContactController{}

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Jane","email":"not-an-email","message":"hi"}`))
	rec := httptest.NewRecorder()
	cc.CreateContact(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"email":"jane@example.com"}`))
	rec = httptest.NewRecorder()
	cc.CreateContact(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
