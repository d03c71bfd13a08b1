// Package observability builds the structured zap logger shared by every
// component of the inventory service.
//
// The logger is configured once at startup from LOG_LEVEL and LOG_FORMAT and
// passed down through the dependency container; request-scoped fields such as
// request IDs are attached at the call sites.
package observability
