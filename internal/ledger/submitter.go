package ledger

import (
	"context"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"fundarb/internal/market"
)

const defaultComputeUnitLimit = 1_000_000

// OrderBuilder produces a venue program's ledger instruction for one
// corrective order. Venue adapters satisfy it.
type OrderBuilder interface {
	BuildOrder(ctx context.Context, ins market.OrderInstruction) (solana.Instruction, error)
}

// Submitter bundles every leg of a cycle into one transaction: a compute
// budget request followed by each venue's order instruction, signed locally
// and sent via RPC. A bundle either lands whole or fails whole, so the hedge
// is never left one-legged by a partial failure.
type Submitter struct {
	rpc      *rpc.Client
	owner    solana.PrivateKey
	builders map[string]OrderBuilder
	units    uint32
	commit   rpc.CommitmentType
	log      zerolog.Logger
}

func NewSubmitter(rpcURL string, owner solana.PrivateKey, builders map[string]OrderBuilder, units uint32, commit string, log zerolog.Logger) *Submitter {
	c := rpc.CommitmentConfirmed
	switch commit {
	case "processed":
		c = rpc.CommitmentProcessed
	case "finalized":
		c = rpc.CommitmentFinalized
	}
	if units == 0 {
		units = defaultComputeUnitLimit
	}
	return &Submitter{
		rpc:      rpc.New(rpcURL),
		owner:    owner,
		builders: builders,
		units:    units,
		commit:   c,
		log:      log,
	}
}

// Submit builds, signs, and sends the instruction bundle, returning the
// transaction signature.
func (s *Submitter) Submit(ctx context.Context, instructions []market.OrderInstruction) (string, error) {
	ixs := make([]solana.Instruction, 0, len(instructions)+1)
	ixs = append(ixs, computebudget.NewSetComputeUnitLimitInstruction(s.units).Build())

	for _, ins := range instructions {
		builder, ok := s.builders[ins.Venue]
		if !ok {
			return "", fmt.Errorf("no order builder for venue %s", ins.Venue)
		}
		ix, err := builder.BuildOrder(ctx, ins)
		if err != nil {
			return "", fmt.Errorf("build %s order: %w", ins.Venue, err)
		}
		ixs = append(ixs, ix)
	}

	recent, err := s.rpc.GetLatestBlockhash(ctx, s.commit)
	if err != nil {
		return "", fmt.Errorf("latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(ixs, recent.Value.Blockhash, solana.TransactionPayer(s.owner.PublicKey()))
	if err != nil {
		return "", fmt.Errorf("assemble tx: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.owner.PublicKey()) {
			return &s.owner
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}

	sig, err := s.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: s.commit,
	})
	if err != nil {
		return "", fmt.Errorf("send tx: %w", err)
	}
	s.log.Info().Str("signature", sig.String()).Int("legs", len(instructions)).Msg("bundle submitted")
	return sig.String(), nil
}
