// Package id generates time-ordered int64 identifiers for all persisted
// entities (users, organizations, memberships, invites, sessions).
package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets up the Snowflake node. Must be called once at startup before any
// call to New; nodeID distinguishes concurrent server instances.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a unique, roughly time-sortable id.
func New() int64 {
	return node.Generate().Int64()
}
