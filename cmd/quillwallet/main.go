// quillwallet is a command-line client for the wallet engine: key
// derivation, fee estimation, signing and broadcast, balances, and
// payment watching against a ledger node.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/quillchain/quillwallet/config"
	"github.com/quillchain/quillwallet/internal/assets"
	"github.com/quillchain/quillwallet/internal/engine"
	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/internal/log"
	"github.com/quillchain/quillwallet/internal/monitor"
	"github.com/quillchain/quillwallet/internal/wallet"
	"github.com/quillchain/quillwallet/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	network := "mainnet"
	rpcURL := ""
	wsURL := ""
	logLevel := "warn"

	// Scan for --rpc, --ws, --network, and --log-level before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--ws" && len(args) > 1:
			wsURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--ws="):
			wsURL = args[0][len("--ws="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		case args[0] == "--log-level" && len(args) > 1:
			logLevel = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			logLevel = args[0][len("--log-level="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if err := log.Init(logLevel, false, ""); err != nil {
		fatal("init logging: %v", err)
	}

	cfg := config.Default(config.NetworkType(network))
	if rpcURL != "" {
		cfg.RPCEndpoint = rpcURL
	}
	if wsURL != "" {
		cfg.WSEndpoint = wsURL
	}
	if err := config.Validate(cfg); err != nil {
		fatal("config: %v", err)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "create":
		cmdCreate(cmdArgs)
	case "address":
		cmdAddress(cmdArgs)
	case "balance":
		cmdBalance(cfg, cmdArgs)
	case "estimate":
		cmdEstimate(cfg, cmdArgs)
	case "send":
		cmdSend(cfg, cmdArgs)
	case "watch":
		cmdWatch(cfg, cmdArgs)
	case "tx":
		cmdTx(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: quillwallet [global flags] <command> [flags]

Global flags:
  --rpc <url>         HTTP JSON-RPC endpoint (default per network)
  --ws <url>          Websocket endpoint for the pending stream
  --network <net>     mainnet (default) or testnet
  --log-level <lvl>   debug, info, warn (default), or error

Commands:
  create [--import] [--key] [--index <n>]
                                  Create a wallet; --import derives from an
                                  existing mnemonic, --key from a raw
                                  private key (both read without echo)
  address --index <n>             Derive the address at an index under an
                                  existing mnemonic (read without echo)
  balance <address> [--asset <SYM>]
                                  Show a balance (native by default)
  estimate --from <addr> --to <addr> --amount <amt> [--asset <SYM>]
                                  Estimate the fee for a transfer
  send --to <addr> --amount <amt> [--asset <SYM>]
                                  Sign, broadcast, and await the receipt
                                  (private key read without echo)
  watch <address> [<address>...]  Stream payment events for addresses
  tx <hash>                       Show a transaction
`)
}

func newEngine(cfg *config.Config) *engine.Engine {
	gw := ledger.NewClientWithTimeout(cfg.RPCEndpoint, cfg.WSEndpoint, cfg.RPCTimeout)
	return engine.New(cfg, gw, assets.NewRegistry(cfg.Network))
}

// ── create ──────────────────────────────────────────────────────────────

func cmdCreate(args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	importMnemonic := fs.Bool("import", false, "Derive from an existing mnemonic")
	rawKey := fs.Bool("key", false, "Build from a raw private key")
	index := fs.Uint("index", 0, "Address index under the derivation path")
	fs.Parse(args)

	opts := wallet.Options{Index: uint32(*index)}

	switch {
	case *rawKey:
		key, err := readSecret("Enter private key (hex): ")
		if err != nil {
			fatal("read private key: %v", err)
		}
		opts.PrivateKey = strings.TrimSpace(string(key))
	case *importMnemonic:
		phrase, err := readSecret("Enter mnemonic: ")
		if err != nil {
			fatal("read mnemonic: %v", err)
		}
		opts.Mnemonic = strings.TrimSpace(string(phrase))
		if !wallet.ValidateMnemonic(opts.Mnemonic) {
			fmt.Fprintln(os.Stderr, "Warning: mnemonic fails BIP-39 checksum validation")
		}
	}

	w, err := wallet.Create(opts)
	if err != nil {
		fatal("create wallet: %v", err)
	}

	fmt.Printf("Address:     %s\n", w.Address)
	fmt.Printf("Public key:  0x%s\n", hex.EncodeToString(w.PublicKey))
	fmt.Printf("Private key: 0x%s\n", hex.EncodeToString(w.PrivateKey))
	if w.Mnemonic != "" {
		fmt.Printf("Mnemonic:    %s\n", w.Mnemonic)
		fmt.Fprintln(os.Stderr, "\nStore the mnemonic offline. Anyone holding it controls the funds.")
	}
}

// ── address ─────────────────────────────────────────────────────────────

func cmdAddress(args []string) {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	index := fs.Uint("index", wallet.DefaultAddressIndex, "Address index under the derivation path")
	fs.Parse(args)

	phrase, err := readSecret("Enter mnemonic: ")
	if err != nil {
		fatal("read mnemonic: %v", err)
	}
	mnemonic := strings.TrimSpace(string(phrase))
	if !wallet.ValidateMnemonic(mnemonic) {
		fmt.Fprintln(os.Stderr, "Warning: mnemonic fails BIP-39 checksum validation")
	}

	w, err := wallet.GenerateAddress(mnemonic, uint32(*index))
	if err != nil {
		fatal("derive address: %v", err)
	}

	fmt.Printf("Index:       %d\n", *index)
	fmt.Printf("Address:     %s\n", w.Address)
	fmt.Printf("Public key:  0x%s\n", hex.EncodeToString(w.PublicKey))
	fmt.Printf("Private key: 0x%s\n", hex.EncodeToString(w.PrivateKey))
}

// ── balance ─────────────────────────────────────────────────────────────

func cmdBalance(cfg *config.Config, args []string) {
	if len(args) < 1 || strings.HasPrefix(args[0], "--") {
		fatal("Usage: quillwallet balance <address> [--asset <SYM>]")
	}
	addr, err := types.ParseAddress(args[0])
	if err != nil {
		fatal("invalid address: %v", err)
	}

	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	asset := fs.String("asset", "", "Asset symbol (native when omitted)")
	fs.Parse(args[1:])

	e := newEngine(cfg)
	balance, err := e.GetBalance(context.Background(), addr, *asset)
	if err != nil {
		fatal("get balance: %v", err)
	}

	symbol := *asset
	if symbol == "" {
		symbol = assets.NativeSymbol
	}
	fmt.Printf("%s %s\n", balance, strings.ToUpper(symbol))
}

// ── estimate ────────────────────────────────────────────────────────────

func cmdEstimate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	fromStr := fs.String("from", "", "Sender address")
	toStr := fs.String("to", "", "Recipient address")
	amount := fs.String("amount", "", "Amount to send (e.g. 1.5)")
	asset := fs.String("asset", "", "Asset symbol (native when omitted)")
	fs.Parse(args)

	if *fromStr == "" || *toStr == "" || *amount == "" {
		fatal("Usage: quillwallet estimate --from <addr> --to <addr> --amount <amt> [--asset <SYM>]")
	}
	from, err := types.ParseAddress(*fromStr)
	if err != nil {
		fatal("invalid sender address: %v", err)
	}
	to, err := types.ParseAddress(*toStr)
	if err != nil {
		fatal("invalid recipient address: %v", err)
	}

	e := newEngine(cfg)
	est, err := e.EstimateFees(context.Background(), from, to, *amount, *asset)
	if err != nil {
		fatal("estimate fees: %v", err)
	}

	printEstimate(est)
}

func printEstimate(est *engine.Estimate) {
	fmt.Printf("Asset:     %s\n", est.Asset.Symbol)
	fmt.Printf("To:        %s\n", est.To)
	fmt.Printf("Nonce:     %d\n", est.Nonce)
	fmt.Printf("Gas limit: %d\n", est.GasLimit)
	fmt.Printf("Gas price: %s\n", est.GasPrice)
	fmt.Printf("Max fee:   %s %s\n", assets.ToHumanUnits(est.Fee(), assets.NativeDecimals), assets.NativeSymbol)
}

// ── send ────────────────────────────────────────────────────────────────

func cmdSend(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	toStr := fs.String("to", "", "Recipient address")
	amount := fs.String("amount", "", "Amount to send (e.g. 1.5)")
	asset := fs.String("asset", "", "Asset symbol (native when omitted)")
	fs.Parse(args)

	if *toStr == "" || *amount == "" {
		fatal("Usage: quillwallet send --to <addr> --amount <amt> [--asset <SYM>]")
	}
	to, err := types.ParseAddress(*toStr)
	if err != nil {
		fatal("invalid recipient address: %v", err)
	}

	key, err := readSecret("Enter private key (hex): ")
	if err != nil {
		fatal("read private key: %v", err)
	}
	keyHex := strings.TrimSpace(string(key))

	sender, err := wallet.Create(wallet.Options{PrivateKey: keyHex})
	if err != nil {
		fatal("invalid private key: %v", err)
	}

	e := newEngine(cfg)
	ctx := context.Background()
	est, err := e.EstimateFees(ctx, sender.Address, to, *amount, *asset)
	if err != nil {
		fatal("estimate fees: %v", err)
	}

	printEstimate(est)
	fmt.Println()

	record, err := e.Send(ctx, est, keyHex)
	if err != nil {
		fatal("send: %v", err)
	}

	fmt.Printf("Confirmed: %s\n", record.Hash)
	if record.BlockNumber != nil {
		fmt.Printf("Block:     %d\n", *record.BlockNumber)
	}
}

// ── watch ───────────────────────────────────────────────────────────────

func cmdWatch(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: quillwallet watch <address> [<address>...]")
	}
	watch, err := monitor.ParseWatchSet(args...)
	if err != nil {
		fatal("watch set: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := ledger.NewClientWithTimeout(cfg.RPCEndpoint, cfg.WSEndpoint, cfg.RPCTimeout)
	m := monitor.New(gw, cfg.Monitor)
	events, err := m.Subscribe(ctx, watch)
	if err != nil {
		fatal("subscribe: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Watching %d address(es); Ctrl-C to stop.\n", watch.Len())
	for ev := range events {
		switch ev := ev.(type) {
		case monitor.HashSeenEvent:
			fmt.Printf("%-12s %s\n", ev.Type(), ev.Hash)
		case monitor.PaymentEvent:
			fmt.Printf("%-12s %s -> %s  value %s %s\n",
				ev.Type(), ev.Tx.Hash, ev.Tx.To,
				assets.ToHumanUnits(ev.Tx.Value, assets.NativeDecimals),
				assets.NativeSymbol)
		case monitor.UnconfirmedEvent:
			fmt.Printf("%-12s %s  (%v)\n", ev.Type(), ev.Hash, ev.Err)
		}
	}
}

// ── tx ──────────────────────────────────────────────────────────────────

func cmdTx(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: quillwallet tx <hash>")
	}
	hash, err := types.HexToHash(args[0])
	if err != nil {
		fatal("invalid hash: %v", err)
	}

	e := newEngine(cfg)
	record, err := e.GetTransaction(context.Background(), hash)
	if err != nil {
		fatal("get transaction: %v", err)
	}

	fmt.Printf("Hash:      %s\n", record.Hash)
	fmt.Printf("From:      %s\n", record.From)
	if record.To != nil {
		fmt.Printf("To:        %s\n", record.To)
	} else {
		fmt.Printf("To:        (contract creation)\n")
	}
	fmt.Printf("Value:     %s %s\n", assets.ToHumanUnits(record.Value, assets.NativeDecimals), assets.NativeSymbol)
	fmt.Printf("Nonce:     %d\n", record.Nonce)
	fmt.Printf("Gas:       %d\n", record.Gas)
	fmt.Printf("Gas price: %s\n", record.GasPrice)
	if record.Pending() {
		fmt.Printf("Status:    pending\n")
	} else {
		fmt.Printf("Block:     %d\n", *record.BlockNumber)
	}
	if len(record.Input) > 0 {
		fmt.Printf("Input:     0x%s\n", hex.EncodeToString(record.Input))
	}
}

// ── Input helpers ───────────────────────────────────────────────────────

func readSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
