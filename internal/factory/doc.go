// Package factory provides an HTTP client for the factory admin attendance
// API.
//
// # Overview
//
// The client covers the monthly attendance endpoints used by the grid
// editor and the read-only employee and branch directory. Every path is
// scoped to a company:
//
//	GET  /api/companies/{company}/attendance?year=Y&month=M
//	POST /api/companies/{company}/attendance
//	PUT  /api/companies/{company}/attendance/{recordId}
//	POST /api/companies/{company}/attendance/mark-present
//	GET  /api/companies/{company}/employees
//	GET  /api/companies/{company}/branches
//
// # Client Usage
//
//	client, err := factory.NewClient(cfg.APIBase,
//		factory.WithToken(cfg.APIToken),
//		factory.WithTimeout(cfg.RequestTimeout),
//	)
//	if err != nil {
//		return err
//	}
//	rows, err := client.FetchMonth(ctx, cfg.CompanyID, 2025, 6)
//
// An empty month comes back as a non-nil empty slice. Callers treat it
// as "cleared", not as "unchanged".
//
// # Errors
//
// Transport failures are wrapped with %w. A 4xx/5xx response produces a
// *StatusError carrying the path, status code and the server's "error"
// message when present.
//
// # Types
//
// types.go mirrors the wire schema. Request types carry validator tags so
// the devserver can reject malformed bodies with the same rules the client
// assumes.
package factory
