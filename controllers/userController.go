package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tabledine/Table_Ordering_Backend/helper"
	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/models"
)

// UserController owns signup, login and profile management for staff
// accounts.
type UserController struct {
	DB        *gorm.DB
	SecretKey string
	Log       zerolog.Logger
}

func NewUserController(db *gorm.DB, secretKey string, log zerolog.Logger) *UserController {
	return &UserController{DB: db, SecretKey: secretKey, Log: log}
}

type signUpRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type profileUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Image    *string `json:"image"`
	Location *string `json:"location"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(hashedPassword, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

// SignUp creates the account and its profile together; the profile is an
// explicit step of account creation, not a side effect.
func (uc *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(req); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	var count int64
	if err := uc.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Error checking existing users"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"success": false, "message": "Username or email already exists"}`, http.StatusConflict)
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		uc.Log.Error().Err(err).Msg("hashing password")
		http.Error(w, `{"success": false, "message": "User creation failed"}`, http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID, Image: "profilepic.jpg"}).Error
	})
	if err != nil {
		uc.Log.Error().Err(err).Msg("creating user")
		http.Error(w, `{"success": false, "message": "User creation failed"}`, http.StatusInternalServerError)
		return
	}

	token, refreshToken, err := helper.GenerateAllTokens(user.Username, user.ID, uc.SecretKey)
	if err != nil {
		uc.Log.Error().Err(err).Msg("generating tokens")
		http.Error(w, `{"success": false, "message": "User creation failed"}`, http.StatusInternalServerError)
		return
	}

	user.Token = &token
	user.RefreshToken = &refreshToken
	if err := uc.DB.Model(&user).Updates(map[string]interface{}{
		"token":         token,
		"refresh_token": refreshToken,
	}).Error; err != nil {
		uc.Log.Error().Err(err).Msg("storing tokens")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Welcome " + user.Username + ", your account has been created successfully!",
		"data": map[string]interface{}{
			"user":          user,
			"token":         token,
			"refresh_token": refreshToken,
		},
	})
}

func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(req); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	var user models.User
	err := uc.DB.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !VerifyPassword(user.Password, req.Password)) {
		http.Error(w, `{"success": false, "message": "Invalid username or password"}`, http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving user"}`, http.StatusInternalServerError)
		return
	}

	token, refreshToken, err := helper.GenerateAllTokens(user.Username, user.ID, uc.SecretKey)
	if err != nil {
		uc.Log.Error().Err(err).Msg("generating tokens")
		http.Error(w, `{"success": false, "message": "Login failed"}`, http.StatusInternalServerError)
		return
	}

	if err := uc.DB.Model(&user).Updates(map[string]interface{}{
		"token":         token,
		"refresh_token": refreshToken,
	}).Error; err != nil {
		uc.Log.Error().Err(err).Msg("storing tokens")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"data": map[string]interface{}{
			"user":          user,
			"token":         token,
			"refresh_token": refreshToken,
		},
	})
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func (uc *UserController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	claims, err := helper.ValidateToken(req.RefreshToken, uc.SecretKey)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid refresh token"}`, http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, claims.UserID).Error; err != nil {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusNotFound)
		return
	}

	if user.RefreshToken == nil || *user.RefreshToken != req.RefreshToken {
		http.Error(w, `{"success": false, "message": "Invalid refresh token"}`, http.StatusUnauthorized)
		return
	}

	token, refreshToken, err := helper.GenerateAllTokens(user.Username, user.ID, uc.SecretKey)
	if err != nil {
		uc.Log.Error().Err(err).Msg("generating tokens")
		http.Error(w, `{"success": false, "message": "Token refresh failed"}`, http.StatusInternalServerError)
		return
	}

	if err := uc.DB.Model(&user).Updates(map[string]interface{}{
		"token":         token,
		"refresh_token": refreshToken,
	}).Error; err != nil {
		uc.Log.Error().Err(err).Msg("storing tokens")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Token refreshed successfully",
		"data": map[string]interface{}{
			"token":         token,
			"refresh_token": refreshToken,
		},
	})
}

// GetMe returns the authenticated account with its profile, creating the
// profile for accounts that predate it.
func (uc *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusNotFound)
		return
	}

	profile, err := models.GetOrCreateProfile(uc.DB, userID)
	if err != nil {
		uc.Log.Error().Err(err).Msg("loading profile")
		http.Error(w, `{"success": false, "message": "Error retrieving profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "User retrieved successfully",
		"data": map[string]interface{}{
			"user":    user,
			"profile": profile,
		},
	})
}

// UpdateProfile edits the account's email and profile fields.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(req); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		http.Error(w, `{"success": false, "message": "User not found"}`, http.StatusNotFound)
		return
	}

	profile, err := models.GetOrCreateProfile(uc.DB, userID)
	if err != nil {
		uc.Log.Error().Err(err).Msg("loading profile")
		http.Error(w, `{"success": false, "message": "Error retrieving profile"}`, http.StatusInternalServerError)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
		if err := uc.DB.Save(&user).Error; err != nil {
			http.Error(w, `{"success": false, "message": "Profile update failed"}`, http.StatusInternalServerError)
			return
		}
	}
	if req.Image != nil {
		profile.Image = *req.Image
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if err := uc.DB.Save(profile).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Profile update failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Your account has been updated!",
		"data": map[string]interface{}{
			"user":    user,
			"profile": profile,
		},
	})
}

// Logout discards the stored token pair.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"token":         nil,
		"refresh_token": nil,
	}).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Logout failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}
