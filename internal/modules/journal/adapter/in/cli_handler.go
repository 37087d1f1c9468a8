package in

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/dto"
	journalin "github.com/hara-desu/ForestOnchain/internal/modules/journal/port/in"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) (dto.ListOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Limit: limit})
}

// Observer records every lifecycle transition. Journal failures are logged
// and never fail the transaction they describe.
func Observer(usecase journalin.Usecase, logger hclog.Logger) tx.Observer {
	logger = logger.Named("journal")
	return func(ev tx.Event) {
		if err := usecase.Record(context.Background(), ev); err != nil {
			logger.Warn("record transaction attempt", "attempt", ev.AttemptID, "state", ev.State.String(), "error", err)
		}
	}
}
