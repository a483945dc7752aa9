// Package lots computes the cost basis of a single instrument position from
// its trade history, using the first-in first-out (FIFO) method.
//
// The core of the package is [FIFO]: a pure function that replays a sequence
// of trades, in the given order, against a queue of open lots, and returns a
// [Position]: realised gain, remaining quantity, average cost of the open
// lots and the lots themselves.
//
// Around it the package provides:
//   - Exact decimal types for quantities ([Quantity]) and prices ([Money]).
//   - Boundary validation of a trade sequence ([Validate], [CheckOversell]).
//   - A human readable JSONL trade file format ([DecodeTrades], [EncodeTrades]).
//   - Importers for spreadsheet and broker exports ([ImportCSV], [ImportIBKR],
//     [ImportJSON]).
//   - Realised gains bucketed by calendar period ([RealisedByPeriod]).
//
// This package serves as the foundational logic for the `fifo` command-line
// tool and its HTTP server.
package lots
