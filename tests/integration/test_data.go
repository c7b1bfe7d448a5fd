package integration

import (
	"fmt"
	"sync/atomic"
	"time"
)

var userCounter int64

// TestUser generates unique test user credentials
func TestUser(suffix string) (email, password string) {
	n := atomic.AddInt64(&userCounter, 1)
	email = fmt.Sprintf("test-%d-%d-%s@example.com", time.Now().Unix(), n, suffix)
	password = "TestPassword123!"
	return
}
