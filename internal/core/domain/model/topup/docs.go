// Package topup provides the Attempt entity tracking mobile-money
// request-to-pay collections initiated when an agent's balance cannot cover
// the hold for an order claim.
//
// An attempt is keyed externally by a correlation id with the "topup_" prefix.
// It resolves exactly once: completed (money arrived, claim committed),
// compensated (money arrived, order gone, amount credited back), or failed.
package topup
