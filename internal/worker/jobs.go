package worker

import (
	"context"
)

// ImportRunner is the slice of the import service the job needs.
type ImportRunner interface {
	Run(ctx context.Context, runID int64) error
}

// ImportWordsJob loads a vocabulary spreadsheet in the background.
type ImportWordsJob struct {
	Imports ImportRunner
	RunID   int64
}

func (j *ImportWordsJob) Name() string { return "import_words" }

func (j *ImportWordsJob) Run(ctx context.Context) error {
	return j.Imports.Run(ctx, j.RunID)
}
