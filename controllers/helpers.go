package controllers

import (
	"encoding/json"
	"net/http"

	"blushbelle-api/middleware"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func decodeJSONBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// currentUserID resolves the authenticated user's object id from the session
// claims attached by the auth middleware.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func optionsUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}
