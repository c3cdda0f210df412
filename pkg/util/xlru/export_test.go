package xlru

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

func newTestLRU() *expirable.LRU[string, int] {
	return expirable.NewLRU[string, int](1, nil, time.Minute)
}
