package contract

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/streakbeast/beastcore/config"
)

// TreasuryContract wraps the on-chain treasury that actually holds the
// staked BNB. The ledger decides who gets what; this client only settles
// claims by pushing a payout transaction.
type TreasuryContract struct {
	client      *ethclient.Client
	config      *config.Config
	contractABI abi.ABI
	address     common.Address
}

type PayoutResult struct {
	Recipient string
	Amount    *big.Int
	TxHash    string
	Success   bool
	Error     string
}

const treasuryABI = `[
    {
        "inputs": [
            {
                "internalType": "address",
                "name": "recipient",
                "type": "address"
            },
            {
                "internalType": "uint256",
                "name": "amount",
                "type": "uint256"
            },
            {
                "internalType": "uint256",
                "name": "poolId",
                "type": "uint256"
            }
        ],
        "name": "payout",
        "outputs": [],
        "stateMutability": "nonpayable",
        "type": "function"
    },
    {
        "inputs": [],
        "name": "paused",
        "outputs": [
            {
                "internalType": "bool",
                "name": "",
                "type": "bool"
            }
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [],
        "name": "treasuryBalance",
        "outputs": [
            {
                "internalType": "uint256",
                "name": "",
                "type": "uint256"
            }
        ],
        "stateMutability": "view",
        "type": "function"
    }
]`

func NewTreasuryContract(cfg *config.Config) (*TreasuryContract, error) {
	var client *ethclient.Client
	var err error

	for i := 0; i < 3; i++ {
		client, err = connectWithTimeout(cfg.Treasury.RPCEndpoint, 30*time.Second)
		if err == nil {
			break
		}
		log.Printf("Failed to connect to chain node (attempt %d): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain node after 3 attempts: %v", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(treasuryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse treasury ABI: %v", err)
	}

	if !common.IsHexAddress(cfg.Treasury.ContractAddress) {
		return nil, fmt.Errorf("invalid treasury address: %s", cfg.Treasury.ContractAddress)
	}

	return &TreasuryContract{
		client:      client,
		config:      cfg,
		contractABI: parsedABI,
		address:     common.HexToAddress(cfg.Treasury.ContractAddress),
	}, nil
}

func connectWithTimeout(endpoint string, timeout time.Duration) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain node: %v", err)
	}
	return client, nil
}

// CheckContractStatus fails when the treasury is paused on-chain.
func (t *TreasuryContract) CheckContractStatus() error {
	data, err := t.contractABI.Pack("paused")
	if err != nil {
		return fmt.Errorf("failed to pack paused call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	result, err := t.client.CallContract(ctx, ethereum.CallMsg{To: &t.address, Data: data}, nil)
	if err != nil {
		return fmt.Errorf("failed to check pause status: %v", err)
	}
	if len(result) > 0 && result[len(result)-1] == 1 {
		return fmt.Errorf("treasury is paused")
	}
	return nil
}

// TreasuryBalance reads the treasury's on-chain balance in wei.
func (t *TreasuryContract) TreasuryBalance() (*big.Int, error) {
	data, err := t.contractABI.Pack("treasuryBalance")
	if err != nil {
		return nil, fmt.Errorf("failed to pack balance call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	result, err := t.client.CallContract(ctx, ethereum.CallMsg{To: &t.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call treasury: %v", err)
	}
	return new(big.Int).SetBytes(result), nil
}

// Payout settles one claim on-chain and waits for the tx to mine.
func (t *TreasuryContract) Payout(recipient common.Address, amount *big.Int, poolID uint64) (*PayoutResult, error) {
	result := &PayoutResult{
		Recipient: recipient.Hex(),
		Amount:    new(big.Int).Set(amount),
	}

	if err := t.CheckContractStatus(); err != nil {
		return nil, err
	}

	balance, err := t.TreasuryBalance()
	if err != nil {
		return nil, err
	}
	if balance.Cmp(amount) < 0 {
		return nil, fmt.Errorf("insufficient treasury balance: need %s, have %s",
			amount.String(), balance.String())
	}

	privateKey, err := crypto.HexToECDSA(t.config.Treasury.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}
	from := crypto.PubkeyToAddress(privateKey.PublicKey)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	nonce, err := t.client.PendingNonceAt(ctx, from)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %v", err)
	}

	gasPrice := big.NewInt(t.config.Treasury.GasPrice)

	data, err := t.contractABI.Pack("payout", recipient, amount, new(big.Int).SetUint64(poolID))
	if err != nil {
		return nil, fmt.Errorf("failed to pack transaction data: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	gasLimit, err := t.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &t.address,
		Data:  data,
		Value: big.NewInt(0),
	})
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %v", err)
	}

	tx := types.NewTransaction(
		nonce,
		t.address,
		big.NewInt(0),
		gasLimit,
		gasPrice,
		data,
	)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(t.config.Treasury.ChainID)), privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = t.client.SendTransaction(ctx, signedTx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 2*time.Minute)
	receipt, err := bind.WaitMined(ctx, t.client, signedTx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction: %v", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		result.Success = false
		result.Error = "transaction reverted"
		result.TxHash = signedTx.Hash().Hex()
		return result, fmt.Errorf("payout transaction reverted: %s", signedTx.Hash().Hex())
	}

	result.Success = true
	result.TxHash = signedTx.Hash().Hex()
	return result, nil
}

func (t *TreasuryContract) Close() {
	if t.client != nil {
		t.client.Close()
	}
}
