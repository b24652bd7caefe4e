package registry

import (
	"context"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/ledger"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ReadGateway is the read-only slice of the ledger gateway the refresher
	// needs.
	ReadGateway interface {
		LatestGroupID(ctx context.Context) (uint64, error)
		ReadBatch(ctx context.Context, queries []ledger.GroupQuery) ([]ledger.GroupResult, error)
	}

	// RefresherMetrics records refresh cycle outcomes.
	RefresherMetrics interface {
		ObserveRefresh(err error, groups int, started time.Time)
		ObserveRefill(err error, groups int, started time.Time)
	}
)
