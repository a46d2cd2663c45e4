package ledger

import (
	"context"

	"github.com/rs/zerolog"

	"fundarb/internal/market"
)

// LogSubmitter is the dry-run substitute for Submitter: it logs what would
// have been sent and never touches the ledger.
type LogSubmitter struct{ log zerolog.Logger }

func NewLogSubmitter(log zerolog.Logger) *LogSubmitter { return &LogSubmitter{log: log} }

func (l *LogSubmitter) Submit(_ context.Context, instructions []market.OrderInstruction) (string, error) {
	for _, ins := range instructions {
		l.log.Info().
			Str("venue", ins.Venue).
			Str("market", ins.Market).
			Str("side", string(ins.Side)).
			Str("size", ins.Size.StringFixed(4)).
			Str("price", ins.Price.String()).
			Str("kind", string(ins.Kind)).
			Msg("dry run, order not submitted")
	}
	return "", nil
}
