// Package capgains provides a set of functions and types for tracking an
// Indian investment portfolio and classifying its realized capital gains.
// It is designed to be local-first and auditable: the ledger is a plain
// JSONL file and every report can be recomputed from it at any time.
//
// The core functionalities include:
//   - Ledger Management: Recording asset declarations and transactions
//     (buys, sells, contributions, ESPP purchases, RSU vests, bonus issues,
//     splits, dividends, and interest) in a chronological record.
//   - Lot Matching: Replaying the ledger into FIFO acquisition lots and
//     disposal matches, with corporate actions rescaling open lots.
//   - Gains Classification: Applying the statutory holding-period rules,
//     including the legislative cutover dates and the grandfathering
//     cost-basis relief, to label every match short-term or long-term.
//   - Tax Reporting: Aggregating gains by fiscal year and advance-tax
//     installment window, and building the Schedule 112A and Schedule FA
//     filing views.
//   - Data Persistence: Handling the encoding and decoding of the ledger
//     to and from a human-readable, version-controllable format.
//
// This package serves as the foundational logic for the `cgt` command-line
// tool, ensuring that all reports are consistent and based on a single
// source of truth.
package capgains
