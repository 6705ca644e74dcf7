package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/role"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserUpdateInput struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email"`
	Role    *string         `json:"role"`
	Profile *models.Profile `json:"profile"`
}

/*
* Scope the listing through the policy and return the matching users
* Passwords never serialize
 */
func FetchAllUsers(ctx context.Context, actor role.Actor, roleFilter string) ([]models.User, error) {
	filter, err := role.UserListFilter(actor, roleFilter)
	if err != nil {
		return nil, err
	}
	var users []models.User
	coll := config.OpenCollection(util.UserCollection)
	if err := config.FindAll(ctx, coll, filter, nil, &users); err != nil {
		log.Println("Error fetching users:", err)
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

/*
* Admin-only single read
* Serve from cache when present, fall back to storage and refill
 */
func FetchUserByID(ctx context.Context, actor role.Actor, id string) (*models.User, error) {
	if err := role.CanManageUser(actor); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid user id")
	}

	key := util.UserKey + id
	cached := models.User{}
	if ok, err := config.GetCache(ctx, key, &cached); ok && err == nil {
		return &cached, nil
	}

	user := models.User{}
	coll := config.OpenCollection(util.UserCollection)
	if err := config.FindOne(ctx, coll, bson.M{"_id": oid}, &user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.USER_NOT_FOUND)
		}
		log.Println("Error fetching user:", err)
		return nil, err
	}
	if err := config.SetCache(ctx, key, user); err != nil {
		log.Println("Error caching user:", err)
	}
	return &user, nil
}

/*
* Admin-only patch; role changes ride through here and nowhere else
* Email changes stay unique and lowercase
 */
func UpdateUserByID(ctx context.Context, actor role.Actor, id string, input UserUpdateInput) (*models.User, error) {
	if err := role.CanManageUser(actor); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid user id")
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		if len(strings.TrimSpace(*input.Name)) < 2 {
			return nil, util.ValidationError("name must be at least 2 characters")
		}
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		if !role.Valid(*input.Role) {
			return nil, util.ValidationError("invalid role")
		}
		set["role"] = *input.Role
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, util.ValidationError("email must not be empty")
		}
		set["email"] = email
	}
	if input.Profile != nil {
		set["profile"] = *input.Profile
	}

	updated := models.User{}
	coll := config.OpenCollection(util.UserCollection)
	err = config.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid}, bson.M{"$set": set}, &updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.USER_NOT_FOUND)
		}
		if config.IsDuplicateKey(err) {
			return nil, util.Conflict(util.EMAIL_ALREADY_IN_USE)
		}
		log.Println("Error updating user:", err)
		return nil, err
	}

	key := util.UserKey + id
	if err := config.DeleteCache(ctx, key); err != nil {
		log.Println("Failed deleting old user cache:", err)
	}
	if err := config.SetCache(ctx, key, updated); err != nil {
		log.Println("Failed caching updated user:", err)
	}
	return &updated, nil
}

/*
* Admin-only delete
* No cascade: dependent appointments, prescriptions and records keep their
* now-orphaned references
 */
func DeleteUserByID(ctx context.Context, actor role.Actor, id string) error {
	if err := role.CanManageUser(actor); err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return util.ValidationError("invalid user id")
	}
	coll := config.OpenCollection(util.UserCollection)
	deleted, err := config.DeleteOne(ctx, coll, bson.M{"_id": oid})
	if err != nil {
		log.Println("Error deleting user:", err)
		return err
	}
	if deleted.DeletedCount == 0 {
		return util.NotFound(util.USER_NOT_FOUND)
	}
	if err := config.DeleteCache(ctx, util.UserKey+id); err != nil {
		log.Println("Error deleting user from cache:", err)
	}
	return nil
}
