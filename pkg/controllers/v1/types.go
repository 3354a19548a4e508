package v1

import "github.com/envelope-zero/ledger/pkg/ledger"

type CommandResponse struct {
	Data Accepted `json:"data"`
}

// Accepted describes a command that has been queued.
type Accepted struct {
	Command    string `json:"command" example:"post_transaction"` // Kind of the command
	Supersedes uint64 `json:"supersedes" example:"41"`            // Version of the snapshot that was current when the command was queued. A successful command publishes a newer one.
}

type SnapshotResponse struct {
	Data    ledger.Snapshot `json:"data"`
	Version uint64          `json:"version" example:"42"`
}
