package redis

import "fmt"

// Key prefix for all client data
const keyPrefix = "whoosh"

// tokensKey returns the Redis key of the hash holding a profile's token pair
func tokensKey(profile string) string {
	return fmt.Sprintf("%s:tokens:%s", keyPrefix, profile)
}
