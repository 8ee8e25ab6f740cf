package redis

import (
	"fmt"

	"github.com/Diana2886/websockets-ui/internal/model"
)

const keyPrefix = "battleship"

func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:account_name:%s", keyPrefix, name)
}

// accountIndexKey is the set of all account keys, used for listing
func accountIndexKey() string {
	return keyPrefix + ":accounts"
}
