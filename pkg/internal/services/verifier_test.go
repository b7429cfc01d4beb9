package services

import (
	"context"
	"testing"

	localCache "github.com/mystickers/mystickers/pkg/internal/cache"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCollectibleFailsOpenWhenUnconfigured(t *testing.T) {
	for _, contract := range []string{"", "0x", "0x0"} {
		viper.Set("chain.contract", contract)
		viper.Set("chain.rpc", "https://mainnet.base.org")

		verifier, err := NewOwnershipVerifier()
		require.NoError(t, err)
		assert.False(t, verifier.Configured())

		hasNFT, err := verifier.HasCollectible(context.Background(), "0x0000000000000000000000000000000000000000")
		require.NoError(t, err)
		assert.True(t, hasNFT, "unconfigured contract %q must fail open", contract)
	}
}

func TestBuildBalanceOfCallData(t *testing.T) {
	owner := "0x00000000000000000000000000000000000000aa"

	first := buildBalanceOfCallData(owner)
	second := buildBalanceOfCallData(owner)

	// 4-byte selector plus the 32-byte padded owner address
	require.Len(t, first, 36)
	assert.Equal(t, []byte{0x70, 0xa0, 0x82, 0x31}, first[:4])
	assert.Equal(t, byte(0xaa), first[35])
	assert.Equal(t, first, second)

	// Encoding must never write into the shared selector
	assert.Equal(t, []byte{0x70, 0xa0, 0x82, 0x31}, balanceOfSelector)
}

func TestHasCollectibleFailsClosedOnRPCError(t *testing.T) {
	require.NoError(t, localCache.NewStore())

	viper.Set("chain.contract", "0x1111111111111111111111111111111111111111")
	viper.Set("chain.rpc", "http://127.0.0.1:1")

	verifier, err := NewOwnershipVerifier()
	require.NoError(t, err)
	assert.True(t, verifier.Configured())

	hasNFT, err := verifier.HasCollectible(context.Background(), "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	assert.False(t, hasNFT)
}
