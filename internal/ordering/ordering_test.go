package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	order int
	found bool
	err   error

	gotUserID   string
	gotCategory domain.Category
}

func (f *fakeReader) MaxOrder(_ context.Context, userID string, category domain.Category) (int, bool, error) {
	f.gotUserID = userID
	f.gotCategory = category
	return f.order, f.found, f.err
}

func TestNextOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reader  *fakeReader
		want    int
		wantErr bool
	}{
		{name: "empty partition starts at zero", reader: &fakeReader{}, want: 0},
		{name: "partition holding order zero", reader: &fakeReader{order: 0, found: true}, want: 1},
		{name: "appends after maximum", reader: &fakeReader{order: 41, found: true}, want: 42},
		{name: "store failure", reader: &fakeReader{err: errors.New("boom")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewManager(tt.reader).NextOrder(context.Background(), "user-1", domain.CategoryDone)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "user-1", tt.reader.gotUserID)
			assert.Equal(t, domain.CategoryDone, tt.reader.gotCategory)
		})
	}
}

func TestValidateReorder(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()

	t.Run("accepts gaps and duplicates without renumbering", func(t *testing.T) {
		items, err := ValidateReorder([]Entry{
			{ID: a.String(), Order: 5, Category: "Done"},
			{ID: b.String(), Order: 5, Category: "In Progress"},
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.ReorderItem{
			{ID: a, Order: 5, Category: domain.CategoryDone},
			{ID: b, Order: 5, Category: domain.CategoryInProgress},
		}, items)
	})

	tests := []struct {
		name      string
		entries   []Entry
		wantField string
		wantErr   error
	}{
		{
			name:    "empty list",
			entries: nil,
			wantErr: ErrEmptyReorder,
		},
		{
			name: "malformed id",
			entries: []Entry{
				{ID: a.String(), Order: 0, Category: "To-Do"},
				{ID: "not-a-uuid", Order: 1, Category: "To-Do"},
			},
			wantField: "tasks[1]._id",
			wantErr:   domain.ErrInvalidID,
		},
		{
			name:      "nil id",
			entries:   []Entry{{ID: uuid.Nil.String(), Category: "To-Do"}},
			wantField: "tasks[0]._id",
			wantErr:   domain.ErrInvalidID,
		},
		{
			name:      "unknown category",
			entries:   []Entry{{ID: a.String(), Order: 0, Category: "Someday"}},
			wantField: "tasks[0].category",
			wantErr:   domain.ErrInvalidCategory,
		},
		{
			name:      "negative order",
			entries:   []Entry{{ID: a.String(), Order: -1, Category: "Done"}},
			wantField: "tasks[0].order",
			wantErr:   domain.ErrInvalidOrder,
		},
		{
			name: "first bad entry wins",
			entries: []Entry{
				{ID: a.String(), Order: 0, Category: "Bogus"},
				{ID: "bad", Order: 0, Category: "Done"},
			},
			wantField: "tasks[0].category",
			wantErr:   domain.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ValidateReorder(tt.entries)
			assert.Nil(t, items)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.wantField != "" {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
			}
		})
	}
}
