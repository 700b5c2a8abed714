// Package intake models the order intake dialog: the Step enum that drives
// the question sequence and the Draft accumulator that collects answers with
// per-field validation. A completed draft is turned into an order at the
// confirm transition; nothing here touches persistence or the chat transport.
package intake
