package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/quillchain/quillwallet/pkg/types"
)

// Wire forms of the node's transaction and receipt records. All numeric
// fields arrive as hex quantities.

type txJSON struct {
	Hash        string  `json:"hash"`
	Nonce       string  `json:"nonce"`
	From        string  `json:"from"`
	To          *string `json:"to"`
	Value       string  `json:"value"`
	Gas         string  `json:"gas"`
	GasPrice    string  `json:"gasPrice"`
	Input       string  `json:"input"`
	BlockNumber *string `json:"blockNumber"`
}

// UnmarshalJSON decodes the node's hex-quantity transaction record.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j txJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	hash, err := types.HexToHash(j.Hash)
	if err != nil {
		return fmt.Errorf("tx hash: %w", err)
	}
	from, err := types.ParseAddress(j.From)
	if err != nil {
		return fmt.Errorf("tx from: %w", err)
	}
	nonce, err := parseUint64(j.Nonce)
	if err != nil {
		return fmt.Errorf("tx nonce: %w", err)
	}
	value, err := parseQuantity(j.Value)
	if err != nil {
		return fmt.Errorf("tx value: %w", err)
	}
	gas, err := parseUint64(j.Gas)
	if err != nil {
		return fmt.Errorf("tx gas: %w", err)
	}
	gasPrice, err := parseQuantity(j.GasPrice)
	if err != nil {
		return fmt.Errorf("tx gasPrice: %w", err)
	}
	input, err := parseData(j.Input)
	if err != nil {
		return fmt.Errorf("tx input: %w", err)
	}

	*t = Transaction{
		Hash:     hash,
		Nonce:    nonce,
		From:     from,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Input:    input,
	}

	// To is absent for contract creation.
	if j.To != nil && *j.To != "" {
		to, err := types.ParseAddress(*j.To)
		if err != nil {
			return fmt.Errorf("tx to: %w", err)
		}
		t.To = &to
	}

	if j.BlockNumber != nil && *j.BlockNumber != "" {
		n, err := parseUint64(*j.BlockNumber)
		if err != nil {
			return fmt.Errorf("tx blockNumber: %w", err)
		}
		t.BlockNumber = &n
	}
	return nil
}

type receiptJSON struct {
	TxHash      string `json:"transactionHash"`
	BlockNumber string `json:"blockNumber"`
	GasUsed     string `json:"gasUsed"`
	Status      string `json:"status"`
}

// UnmarshalJSON decodes the node's hex-quantity receipt record.
func (r *Receipt) UnmarshalJSON(data []byte) error {
	var j receiptJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	hash, err := types.HexToHash(j.TxHash)
	if err != nil {
		return fmt.Errorf("receipt hash: %w", err)
	}
	blockNumber, err := parseUint64(j.BlockNumber)
	if err != nil {
		return fmt.Errorf("receipt blockNumber: %w", err)
	}
	gasUsed, err := parseUint64(j.GasUsed)
	if err != nil {
		return fmt.Errorf("receipt gasUsed: %w", err)
	}
	status, err := parseUint64(j.Status)
	if err != nil {
		return fmt.Errorf("receipt status: %w", err)
	}

	*r = Receipt{
		TxHash:      hash,
		BlockNumber: blockNumber,
		GasUsed:     gasUsed,
		Status:      status,
	}
	return nil
}
