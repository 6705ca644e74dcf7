package services

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/role"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Name         string         `json:"name" binding:"required,min=2"`
	Email        string         `json:"email" binding:"required,email"`
	Password     string         `json:"password" binding:"required,min=6"`
	Role         string         `json:"role" binding:"required,oneof=patient doctor pharmacist admin"`
	Profile      models.Profile `json:"profile"`
	Specialty    string         `json:"specialty"`
	PharmacyName string         `json:"pharmacyName"`
	AdminSecret  string         `json:"adminSecret"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=patient doctor pharmacist admin"`
}

/*
* Generate a bcrypt digest for the given password
 */
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

/*
* Compare the input password against the stored digest, never plaintext
 */
func VerifyPassword(dbPassword string, inputPassword string) error {
	if strings.TrimSpace(dbPassword) == "" {
		return errors.New("stored password missing or invalid")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dbPassword), []byte(inputPassword)); err != nil {
		return util.Unauthenticated(util.INVALID_CREDENTIALS)
	}
	return nil
}

// profileFor keeps only the profile fields that fit the role. Flat
// specialty/pharmacyName fields override the nested profile when set.
func profileFor(input SignupInput) models.Profile {
	switch input.Role {
	case role.Doctor:
		p := models.Profile{
			Specialty:     input.Profile.Specialty,
			LicenseNumber: input.Profile.LicenseNumber,
		}
		if input.Specialty != "" {
			p.Specialty = input.Specialty
		}
		return p
	case role.Pharmacist:
		p := models.Profile{
			PharmacyName:    input.Profile.PharmacyName,
			PharmacyDetails: input.Profile.PharmacyDetails,
		}
		if input.PharmacyName != "" {
			p.PharmacyName = input.PharmacyName
		}
		return p
	}
	return models.Profile{}
}

/*
* Admin creation is gated behind a server-side secret
* An unconfigured secret is a server configuration error, not a Forbidden
 */
func checkAdminSecret(input SignupInput) error {
	if input.Role != role.Admin {
		return nil
	}
	configured := os.Getenv("ADMIN_SECRET")
	if configured == "" {
		return util.ServerError(util.ADMIN_SIGNUP_NOT_CONFIGURED)
	}
	if input.AdminSecret != configured {
		return util.Forbidden(util.INVALID_ADMIN_SECRET)
	}
	return nil
}

/*
* Validate the admin gate
* Reject duplicate emails, hash the password, insert the user
* Issue a token carrying id and role
 */
func Signup(ctx context.Context, input SignupInput) (*models.User, string, error) {
	if err := checkAdminSecret(input); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	coll := config.OpenCollection(util.UserCollection)

	existing := models.User{}
	err := config.FindOne(ctx, coll, bson.M{"email": email}, &existing)
	if err == nil {
		return nil, "", util.Conflict(util.EMAIL_ALREADY_IN_USE)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Println("Error checking for existing email:", err)
		return nil, "", err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Println("Error hashing password:", err)
		return nil, "", err
	}

	now := time.Now()
	user := models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  hashed,
		Role:      input.Role,
		Profile:   profileFor(input),
		CreatedAt: now,
		UpdatedAt: now,
	}
	inserted, err := config.CreateOne(ctx, coll, user)
	if err != nil {
		if config.IsDuplicateKey(err) {
			return nil, "", util.Conflict(util.EMAIL_ALREADY_IN_USE)
		}
		log.Println("Error inserting user:", err)
		return nil, "", err
	}
	user.ID = inserted.InsertedID.(primitive.ObjectID)

	token, err := config.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		log.Println("Error generating token:", err)
		return nil, "", err
	}
	return &user, token, nil
}

/*
* Look up by lowercased email
* Unknown email and bad password answer the same way
* A role mismatch is a distinct Forbidden
 */
func Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	coll := config.OpenCollection(util.UserCollection)

	user := models.User{}
	err := config.FindOne(ctx, coll, bson.M{"email": email}, &user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", util.Unauthenticated(util.INVALID_CREDENTIALS)
		}
		log.Println("Error fetching user for login:", err)
		return nil, "", err
	}
	if user.Role != input.Role {
		return nil, "", util.Forbidden(util.ROLE_MISMATCH)
	}
	if err := VerifyPassword(user.Password, input.Password); err != nil {
		return nil, "", err
	}

	token, err := config.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		log.Println("Error generating token:", err)
		return nil, "", err
	}
	return &user, token, nil
}
