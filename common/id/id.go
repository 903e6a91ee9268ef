package id

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a time-ordered int64 ID unique across nodes.
func New() int64 {
	return node.Generate().Int64()
}

// NewString is New formatted in base 10, used where ids travel as strings (delivery ids).
func NewString() string {
	return strconv.FormatInt(New(), 10)
}
