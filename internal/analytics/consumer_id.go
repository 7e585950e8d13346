package analytics

import (
	"fmt"
	"os"
	"time"
)

// NewConsumerID builds a consumer name for the like event consumer group.
// Hostname plus PID keeps names unique across replicas; the timestamp
// suffix keeps restarts from inheriting a dead consumer's pending list.
func NewConsumerID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "bloglist-worker"
	}
	return fmt.Sprintf("%s-%d-%d", host, os.Getpid(), time.Now().UnixNano())
}
