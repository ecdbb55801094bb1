package idutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pandamarket/backend/pkg/crypto"
)

// The node id is drawn at startup. Instances are few enough that a clash
// within the same millisecond is not a practical concern.
var node = mustNode()

func mustNode() *snowflake.Node {
	n, err := snowflake.NewNode(int64(crypto.RandIntn(1024)))
	if err != nil {
		panic(err)
	}

	return n
}

// NextID returns a unique id whose order follows creation time across
// instances.
func NextID() int64 {
	return node.Generate().Int64()
}

// Time extracts the creation time embedded in an id.
func Time(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
