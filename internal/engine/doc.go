// Package engine implements the order and settlement normalization engine.
// It turns raw marketplace export rows into normalized, shipping/accounting
// ready records plus aggregate statistics.
//
// # Architecture
//
// The engine is a pure function over an in-memory batch. One generic
// implementation is parameterized by a Marketplace adapter that supplies the
// per-platform column aliases, cancellation keywords, brand suffix rules and
// fee column lists:
//
//	eng := engine.New(logger)
//	result, err := eng.ProcessOrders(engine.Shopee(), rows, engine.OrderOptions{
//	    Platform:    "MP SHOPEE ZANEVA",
//	    OperatorTag: "cs1.zaneva@gmail.com",
//	    Brands:      brands,
//	})
//
// # Data Flow
//
//	RawRecords → column resolution → cancellation filter → grouping and
//	SKU expansion → conservation splits → OrderRows + BatchStats
//
// The income pipeline shares column resolution and currency parsing and
// diverges into fee reconciliation:
//
//	RawRecords → column resolution → fee separation → IncomeRows + BatchStats
//
// # Error Handling
//
// Missing required columns and empty filtered batches abort the whole batch
// with no partial output. Malformed currency text, unmapped brands and absent
// optional columns degrade to safe defaults and never abort.
//
// The engine holds no state across invocations; concurrent calls on
// independent batches are safe.
package engine
