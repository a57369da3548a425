// Package errs defines the application's classified errors.
//
// Every failure that reaches a client is one of four kinds
// (InvalidArgument, NotFound, Conflict, Internal). Each kind maps onto a
// fixed HTTP status and every error response shares the same JSON shape,
// so clients receive meaningful, actionable, and consistent messages.
package errs
