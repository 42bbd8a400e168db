package booking

import (
	"github.com/soleraspa/booking-service/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works both on a
// plain DB and inside a managed transaction.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
