package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Run processes rows strictly in input order, never aborting the batch
	// because of a row failure. Progress is emitted after every row and a
	// terminal event closes the session. A setup failure (the category
	// table cannot be loaded) or context cancellation aborts the whole run
	// with no BatchResult.
	Run(ctx context.Context, rows []RowInput, actorID snowflake.ID, sessionID string) (*BatchResult, error)

	// RunArtifact parses an uploaded spreadsheet and runs the batch. The
	// artifact file is removed on every exit path; removal failures are
	// logged, never propagated.
	RunArtifact(ctx context.Context, path string, actorID snowflake.ID, sessionID string) (*BatchResult, error)
}
