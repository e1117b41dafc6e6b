// Package datatable implements the server-side datatable engine used by the
// back-office listings: extraction of rows from a data source, filtering,
// single-column sorting, pagination with page-control descriptors and a
// selection set that survives filter, sort and page changes.
//
// A Manager is not safe for concurrent use. Callers that share one between
// goroutines (one per user session, for example) must serialize access.
package datatable
