package services

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	localCache "github.com/mystickers/mystickers/pkg/internal/cache"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Function selector of the ERC-721 read balanceOf(address).
var balanceOfSelector = common.FromHex("0x70a08231")

const ownershipCacheLifetime = 5 * time.Minute

// OwnershipVerifier answers whether a wallet holds at least one token of the
// configured collection. With no collection configured every wallet passes;
// an RPC failure denies. The gate is informational, nothing else in the API
// enforces its result.
type OwnershipVerifier struct {
	contract string
	client   *ethclient.Client
}

func NewOwnershipVerifier() (*OwnershipVerifier, error) {
	verifier := &OwnershipVerifier{
		contract: viper.GetString("chain.contract"),
	}

	if !verifier.Configured() {
		log.Warn().Msg("No collection contract configured, ownership checks will pass everyone...")
		return verifier, nil
	}

	client, err := ethclient.Dial(viper.GetString("chain.rpc"))
	if err != nil {
		return nil, fmt.Errorf("unable to configure chain rpc client: %v", err)
	}
	verifier.client = client

	return verifier, nil
}

func (v *OwnershipVerifier) Configured() bool {
	switch v.contract {
	case "", "0x", "0x0":
		return false
	default:
		return true
	}
}

func GetOwnershipCacheKey(address string) any {
	return fmt.Sprintf("nft-ownership#%s", address)
}

func (v *OwnershipVerifier) HasCollectible(ctx context.Context, address string) (bool, error) {
	if !v.Configured() {
		return true, nil
	}

	address = strings.ToLower(address)

	cacheManager := cache.New[any](localCache.S)
	if val, err := cacheManager.Get(ctx, GetOwnershipCacheKey(address)); err == nil {
		if owned, ok := val.(bool); ok {
			return owned, nil
		}
	}

	balance, err := v.balanceOf(ctx, address)
	if err != nil {
		log.Warn().Err(err).Str("address", address).Msg("Unable to read collection balance, denying...")
		return false, nil
	}

	owned := balance.Sign() > 0
	_ = cacheManager.Set(ctx, GetOwnershipCacheKey(address), owned,
		store.WithExpiration(ownershipCacheLifetime))

	return owned, nil
}

// buildBalanceOfCallData encodes balanceOf(owner) into a fresh buffer so the
// shared selector slice is never appended to.
func buildBalanceOfCallData(owner string) []byte {
	callData := make([]byte, 0, len(balanceOfSelector)+32)
	callData = append(callData, balanceOfSelector...)
	return append(callData, common.LeftPadBytes(common.HexToAddress(owner).Bytes(), 32)...)
}

func (v *OwnershipVerifier) balanceOf(ctx context.Context, address string) (*big.Int, error) {
	contract := common.HexToAddress(v.contract)

	out, err := v.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: buildBalanceOfCallData(address),
	}, nil)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(out), nil
}
