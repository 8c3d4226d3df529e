package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "debatetab/pkg/domain-errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty is allowed", in: "  ", want: ""},
		{name: "domain lower-cased", in: " Ann.Lee@Example.ORG ", want: "Ann.Lee@example.org"},
		{name: "missing at", in: "ann.example.org", wantErr: true},
		{name: "display name rejected", in: "Ann <ann@example.org>", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLastWord(t *testing.T) {
	assert.Equal(t, "Okafor", LastWord("Chidi  Okafor"))
	assert.Equal(t, "Cher", LastWord("Cher"))
	assert.Equal(t, "", LastWord("   "))
}
