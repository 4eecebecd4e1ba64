package persistence

import (
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

// logFieldErrors records stored JSON columns that failed to decode. The
// affected fields come back as zero values instead of failing the read, so
// the warning is the only trace of the problem.
func logFieldErrors(zlog *zap.Logger, table, id string, fieldErrs []models.FieldError) {
	for _, fe := range fieldErrs {
		zlog.Warn("malformed stored field, using zero value",
			zap.String("code", shared.ErrMalformedRecord.Code),
			zap.String("table", table),
			zap.String("id", id),
			zap.String("field", fe.Field),
			zap.Error(fe.Err),
		)
	}
}
