package usecase

import (
	"fmt"

	"github.com/runoshun/git-batch/internal/domain"
)

// ShowResult is the use case for retrieving a stored result record.
type ShowResult struct {
	results domain.ResultStore
}

// NewShowResult creates a new ShowResult use case.
func NewShowResult(results domain.ResultStore) *ShowResult {
	return &ShowResult{results: results}
}

// Execute returns the result for the task id.
func (uc *ShowResult) Execute(id string) (*domain.Result, error) {
	res, err := uc.results.LoadResult(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrResultNotFound, id)
	}
	return res, nil
}
