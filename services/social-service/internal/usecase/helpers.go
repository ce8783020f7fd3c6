package usecase

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// callerID parses the id carried by a verified token.
func callerID(userID string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return bson.NilObjectID, ErrUserNotFound
	}
	return objectID, nil
}
