// Package order provides domain entities and business logic for freight order
// management. It implements the Order aggregate root with lifecycle management
// and state transitions.
//
// The package includes:
//   - Order: The aggregate root holding route, cargo, pricing and comments
//   - Waypoint: An address with optionally resolved coordinates
//   - Status: A state machine that enforces valid order status transitions
//   - Patch: An explicit partial update applied field-by-field
//
// Key business rules:
//   - Orders must have a valid unique identifier and an owning user
//   - Cargo weight must be positive and not exceed 10000 kg
//   - Order status follows a defined workflow: Pending -> Confirmed ->
//     InProgress -> Completed, with Cancelled reachable from any non-final state
//   - Price and distance are computed at intake time and recorded as-is
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
