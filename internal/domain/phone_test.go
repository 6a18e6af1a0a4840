package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare ten digits", raw: "8081234567", want: "+18081234567"},
		{name: "dashes", raw: "808-123-4567", want: "+18081234567"},
		{name: "parentheses and spaces", raw: "(808) 123 4567", want: "+18081234567"},
		{name: "dots", raw: "808.123.4567", want: "+18081234567"},
		{name: "eleven digits with country code", raw: "18081234567", want: "+18081234567"},
		{name: "full international form", raw: "+1 808 123 4567", want: "+18081234567"},
		{name: "too short", raw: "123456", wantErr: true},
		{name: "too long", raw: "180812345678", wantErr: true},
		{name: "eleven digits without leading one", raw: "28081234567", wantErr: true},
		{name: "letters", raw: "808-CALL-NOW", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
