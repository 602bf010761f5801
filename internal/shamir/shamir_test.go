package shamir_test

import (
	"crypto/rand"
	"testing"

	"github.com/medvault/go-med-vault/internal/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSecret(t *testing.T, n int) []byte {
	t.Helper()
	secret := make([]byte, n)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	return secret
}

func TestSplitCombine_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		parts     int
		threshold int
	}{
		{name: "2 of 2", parts: 2, threshold: 2},
		{name: "2 of 3", parts: 3, threshold: 2},
		{name: "3 of 5", parts: 5, threshold: 3},
		{name: "5 of 5", parts: 5, threshold: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := randomSecret(t, 1190) // pkcs8 DER of a 2048-bit key is about this long

			shares, err := shamir.Split(secret, tt.parts, tt.threshold)
			require.NoError(t, err)
			require.Len(t, shares, tt.parts)
			for _, share := range shares {
				assert.Len(t, share, len(secret)+1)
				assert.NotEqual(t, secret, share[:len(secret)])
			}

			// Any threshold-sized subset reconstructs the secret.
			got, err := shamir.Combine(shares[:tt.threshold])
			require.NoError(t, err)
			assert.Equal(t, secret, got)

			// So does the full share set.
			got, err = shamir.Combine(shares)
			require.NoError(t, err)
			assert.Equal(t, secret, got)
		})
	}
}

func TestSplit_UnderThresholdRevealsNothingUseful(t *testing.T) {
	secret := randomSecret(t, 64)

	shares, err := shamir.Split(secret, 5, 3)
	require.NoError(t, err)

	// Combining below the threshold interpolates to a wrong value.
	got, err := shamir.Combine(shares[:2])
	require.NoError(t, err)
	assert.NotEqual(t, secret, got)
}

func TestSplit_ParameterValidation(t *testing.T) {
	secret := randomSecret(t, 16)

	tests := []struct {
		name      string
		secret    []byte
		parts     int
		threshold int
		wantErr   error
	}{
		{name: "one part", secret: secret, parts: 1, threshold: 1, wantErr: shamir.ErrInvalidParts},
		{name: "too many parts", secret: secret, parts: 256, threshold: 2, wantErr: shamir.ErrInvalidParts},
		{name: "threshold one", secret: secret, parts: 3, threshold: 1, wantErr: shamir.ErrInvalidThreshold},
		{name: "threshold above parts", secret: secret, parts: 3, threshold: 4, wantErr: shamir.ErrInvalidThreshold},
		{name: "empty secret", secret: nil, parts: 3, threshold: 2, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shamir.Split(tt.secret, tt.parts, tt.threshold)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCombine_TooFewShares(t *testing.T) {
	_, err := shamir.Combine(nil)
	assert.ErrorIs(t, err, shamir.ErrTooFewShares)

	_, err = shamir.Combine([][]byte{{0x01, 0x02}})
	assert.ErrorIs(t, err, shamir.ErrTooFewShares)
}
