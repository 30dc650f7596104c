package application

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price    string
		expected uint64
		fails    bool
	}{
		{price: "1", expected: 1},
		{price: "250", expected: 250},
		{price: "250.000", expected: 250},
		{price: "18446744073709551615", expected: 18446744073709551615},
		{price: "0", fails: true},
		{price: "-3", fails: true},
		{price: "2.5", fails: true},
		{price: "18446744073709551616", fails: true},
		{price: "abc", fails: true},
		{price: "", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			v, err := parsePrice(tt.price)
			if tt.fails {
				require.EqualError(t, err, ErrMalformedPrice.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestValidateTokenStandard(t *testing.T) {
	t.Parallel()

	standard, err := validateTokenStandard("")
	require.NoError(t, err)
	require.Equal(t, domain.TokenStandardFungible, standard)

	standard, err = validateTokenStandard("fungible")
	require.NoError(t, err)
	require.Equal(t, domain.TokenStandardFungible, standard)

	standard, err = validateTokenStandard("unique")
	require.NoError(t, err)
	require.Equal(t, domain.TokenStandardUnique, standard)

	_, err = validateTokenStandard("exotic")
	require.EqualError(t, err, ErrInvalidTokenStandard.Error())
}
