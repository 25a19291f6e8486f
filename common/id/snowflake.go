package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Node IDs are assigned per binary so concurrently running services never
// mint the same ID.
const (
	NodeServer int64 = 1
	NodeWorker int64 = 2
	NodeDigest int64 = 3
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID. Call once at
// startup with the binary's Node constant.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new globally unique int64 ID using the Snowflake algorithm.
// IDs are time-ordered and unique across distributed instances.
func New() int64 {
	return node.Generate().Int64()
}
