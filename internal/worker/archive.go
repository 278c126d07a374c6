package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/repository"
)

// ArchiveResults stores a run's results under runID. Each record keeps its
// position in the output and its encoded form.
func ArchiveResults(ctx context.Context, repo repository.ResultRepository, runID uuid.UUID, results []*dto.Result) error {
	archived := make([]repository.ArchivedResult, 0, len(results))
	for i, r := range results {
		payload, err := dto.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode result %d: %w", i, err)
		}
		archived = append(archived, repository.ArchivedResult{
			Seq:       i,
			Command:   string(r.Command),
			Username:  r.Username,
			Timestamp: r.Timestamp,
			IsError:   r.Error != "",
			Payload:   payload,
		})
	}
	return repo.SaveRun(ctx, runID, archived)
}
