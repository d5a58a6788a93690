package transfer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// 原生转账的固定gas上限
const transferGasLimit = 21000

// EthClient 以太坊出账通道，实现 ledger.TransferPort
type EthClient struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	from       common.Address
	chainId    *big.Int
}

func Init(cfg config.ChainConfig) (*EthClient, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &EthClient{
		client:     client,
		privateKey: privateKey,
		from:       crypto.PubkeyToAddress(privateKey.PublicKey),
		chainId:    big.NewInt(cfg.ChainId),
	}, nil
}

// Transfer 向目标地址发送原生价值转账
func (c *EthClient) Transfer(to string, amount int64) error {
	ctx := context.Background()

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return fmt.Errorf("failed to get pending nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, common.HexToAddress(to),
		big.NewInt(amount), transferGasLimit, gasPrice, nil)

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Info("Transfer sent: to=%s amount=%d tx=%s", to, amount, signedTx.Hash().Hex())
	return nil
}
