package redis

import (
	"fmt"

	"github.com/mcoot/whoosh/internal/model"
)

// Key prefix for all backend data
const keyPrefix = "whoosh"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// matchKey returns the Redis key for a Match
func matchKey(id string) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// userMatchesKey returns the Redis key for the LIST of a user's match ids, newest first
func userMatchesKey(id model.UserID) string {
	return fmt.Sprintf("%s:idx:user_matches:%s", keyPrefix, id)
}

// queueKey returns the Redis key for a matchmaking queue LIST
func queueKey(queue string) string {
	return fmt.Sprintf("matchmaking:queue:%s", queue)
}
