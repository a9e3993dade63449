// Package handler is the HTTP layer behind the router.
//
// Every endpoint is a typed function wrapped by Handle or HandleFile, which
// bind and validate the request, trace and log the call, and write the
// result. Tenant-scoped tables share one generic ResourceHandler.
package handler
