// Package shopdex is the embedded Go SDK for the shop search engine.
//
// The client wires the search pipeline directly against the cache store and
// the catalog database, without going through the HTTP API:
//
//	client, err := shopdex.New(ctx,
//		shopdex.WithRedis("localhost:6379"),
//		shopdex.WithMongo("mongodb://localhost:27017", "shopdex", "shops"),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	res, err := client.Search(ctx, shopdex.Query{Text: "nail art"})
package shopdex
