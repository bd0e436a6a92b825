// pkg/sink/csv_test.go
package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

func TestCSVSinkWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	row := &model.Row{
		AppID:                model.String("A1"),
		FullName:             model.String("Riley Park"),
		Email:                model.String("riley@example.com"),
		Gender:               model.String("Female"),
		GenderOriginal:       model.String("F"),
		DateOfBirth:          model.Date(time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)),
		DateOfBirthOriginal:  model.String("15/06/1990"),
		AnnualIncome:         model.Float(64000),
		SpendingTotal:        model.Float(0),
		SpendingCategories:   model.Float(0),
		SpendingCategoryList: model.String(""),
		EmailValid:           true,
		CompletenessScore:    10,
		CompletenessPct:      83.3,
		SSNDuplicateFlag:     false,
	}

	s := NewCSVSink(path, zap.NewNop())
	require.NoError(t, s.Write(context.Background(), model.Table{row}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, model.OutputColumns, header)
	assert.Equal(t, "app_id", header[0])
	assert.Equal(t, "ssn_duplicate_flag", header[len(header)-1])

	byColumn := make(map[string]string, len(header))
	for i, column := range header {
		byColumn[column] = records[1][i]
	}

	assert.Equal(t, "A1", byColumn["app_id"])
	assert.Equal(t, "1990-06-15", byColumn["date_of_birth"])
	assert.Equal(t, "15/06/1990", byColumn["date_of_birth_original"])
	assert.Equal(t, "64000", byColumn["annual_income"])
	assert.Equal(t, "true", byColumn["email_valid"])
	assert.Equal(t, "10", byColumn["completeness_score"])
	assert.Equal(t, "83.3", byColumn["completeness_pct"])
	assert.Equal(t, "false", byColumn["ssn_duplicate_flag"])

	// null markers render empty
	assert.Equal(t, "", byColumn["ssn"])
	assert.Equal(t, "", byColumn["notes"])
}

func TestCSVSinkWriteFailure(t *testing.T) {
	s := NewCSVSink(filepath.Join(t.TempDir(), "missing", "dir", "out.csv"), zap.NewNop())
	err := s.Write(context.Background(), model.Table{})
	assert.Error(t, err)
}
