// Package services contains stateless domain services that do not belong to
// a single aggregate: the linear Tariff pricing model and the AddressResolver
// that drives the geocoding query-variant ladder.
package services
