package util

import (
	"strconv"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/hash"
)

// Accounts returns a deterministic admin and ten users for tests and local genesis
func Accounts() (common.Address, []common.Address) {
	admin := account("admin")
	users := make([]common.Address, 0, 10)
	for i := 1; i < 11; i++ {
		users = append(users, account("user"+strconv.Itoa(i)))
	}
	return admin, users
}

func account(seed string) common.Address {
	h := hash.Hash([]byte(seed))
	return common.BytesToAddress(h[12:])
}
