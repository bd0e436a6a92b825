// pkg/audit/audit.go
package audit

import (
	"context"

	"github.com/novacred/credit-ingress/pkg/model"
)

// Recorder persists cleaning operations for later review. The pipeline
// reports every mutation it performs; where they go is the recorder's
// concern.
type Recorder interface {
	Record(ctx context.Context, operations []model.CleaningOperation) error
}

// NopRecorder discards all operations. Used when no audit trail is
// configured.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(ctx context.Context, operations []model.CleaningOperation) error {
	return nil
}
