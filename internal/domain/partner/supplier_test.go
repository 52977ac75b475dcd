package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("valid supplier", func(t *testing.T) {
		s, err := NewSupplier("Shenzhen Widget Co")
		require.NoError(t, err)
		assert.Equal(t, "Shenzhen Widget Co", s.Name)
		assert.Equal(t, 1, s.SupplierRank)
		assert.Equal(t, 0, s.CustomerRank)
		assert.True(t, s.IsSupplier())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := NewSupplier("")
		assert.Error(t, err)
	})
}

func TestNewImportedSupplier(t *testing.T) {
	tests := []struct {
		name        string
		companyName string
		memberName  string
		wantName    string
	}{
		{"company name wins", "Acme Trading", "acme88", "Acme Trading"},
		{"member name as fallback", "", "acme88", "acme88"},
		{"placeholder when both blank", "", "", FallbackSupplierName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewImportedSupplier(tt.companyName, tt.memberName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name)
			assert.True(t, s.IsSupplier())
			assert.Contains(t, s.Comment, "Imported automatically from 1688")
		})
	}

	t.Run("member name recorded in comment", func(t *testing.T) {
		s, err := NewImportedSupplier("Acme Trading", "acme88")
		require.NoError(t, err)
		assert.Contains(t, s.Comment, "acme88")
		assert.Equal(t, "acme88", s.MemberName)
	})
}
