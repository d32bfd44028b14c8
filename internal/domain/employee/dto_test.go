package employee

import (
	"math"
	"testing"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeFilter_Validate(t *testing.T) {
	tests := []struct {
		name      string
		filter    EmployeeFilter
		wantPage  int
		wantLimit int
		wantField string
	}{
		{"defaults", EmployeeFilter{}, 1, DefaultPageLimit, ""},
		{"last addressable page", EmployeeFilter{Page: MaxOffset/50 + 1, Limit: 50}, MaxOffset/50 + 1, 50, ""},
		{"offset past int32", EmployeeFilter{Page: MaxOffset/50 + 2, Limit: 50}, 0, 0, "page"},
		{"offset would overflow int64", EmployeeFilter{Page: math.MaxInt64/50 + 2, Limit: 50}, 0, 0, "page"},
		{"limit too large", EmployeeFilter{Limit: MaxPageLimit + 1}, 0, 0, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			err := f.Validate()
			if tt.wantField != "" {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Equal(t, tt.wantField, verrs[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
		})
	}
}
