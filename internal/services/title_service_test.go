package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
)

func mockTitleService(t *testing.T) (*TitleService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTitleService(db, 10), mock
}

// The page count and the row query share a builder; counting must not narrow
// the select list of the subsequent find.
func TestListReturnsHydratedTitles(t *testing.T) {
	svc, mock := mockTitleService(t)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT\("titles"\."id"\)\) FROM "titles"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT DISTINCT \* FROM "titles"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "year", "description", "rating", "category_id"}).
			AddRow(1, "Solaris", 1972, nil, 8, nil))

	mock.ExpectQuery(`SELECT \* FROM "title_genres"`).
		WillReturnRows(sqlmock.NewRows([]string{"title_id", "genre_id"}))

	mock.ExpectQuery(`SELECT AVG\(score\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(8.0))

	titles, page, err := svc.List(dto.TitleFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, titles, 1)

	assert.Equal(t, "Solaris", titles[0].Name)
	require.NotNil(t, titles[0].Year)
	assert.Equal(t, 1972, *titles[0].Year)
	require.NotNil(t, titles[0].Rating)
	assert.Equal(t, 8, *titles[0].Rating)
	assert.Equal(t, int64(1), page.Total)

	// Rating matched the stored value, so no UPDATE was issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func fptr(f float64) *float64 { return &f }

func TestRatingFromAverage(t *testing.T) {
	tests := []struct {
		name string
		avg  *float64
		want *int
	}{
		{"no reviews", nil, nil},
		{"exact", fptr(7.0), iptr(7)},
		{"rounds down", fptr(7.4), iptr(7)},
		{"rounds up", fptr(7.6), iptr(8)},
		{"tie rounds half up", fptr(7.5), iptr(8)},
		{"tie at low score", fptr(1.5), iptr(2)},
		{"single review min", fptr(1.0), iptr(1)},
		{"single review max", fptr(10.0), iptr(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RatingFromAverage(tt.avg)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func iptr(i int) *int { return &i }

func TestRatingEqual(t *testing.T) {
	assert.True(t, ratingEqual(nil, nil))
	assert.True(t, ratingEqual(iptr(5), iptr(5)))
	assert.False(t, ratingEqual(nil, iptr(5)))
	assert.False(t, ratingEqual(iptr(5), nil))
	assert.False(t, ratingEqual(iptr(5), iptr(6)))
}

func TestPageMath(t *testing.T) {
	p := Page{Page: 3, Limit: 10, Total: 41}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, int64(5), p.TotalPages())

	empty := Page{Page: 1, Limit: 10, Total: 0}
	assert.Equal(t, int64(0), empty.TotalPages())
}
