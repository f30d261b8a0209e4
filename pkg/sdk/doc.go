// Package sdk provides a Go client for a remote loupe match service.
//
// The client wraps the HTTP API: match queries, health, and version.
//
//	client, _ := sdk.New("http://localhost:8080",
//	    sdk.WithAPIKey(os.Getenv("LOUPE_API_KEY")),
//	)
//	res, err := client.Match(ctx, sdk.MatchRequest{
//	    Name:    "Acme Corp",
//	    Website: "acme.com",
//	})
//
// API errors carry the server's error code and map onto sentinel errors:
//
//	if errors.Is(err, sdk.ErrRateLimited) { ... }
//
// To embed the match engine in process instead of calling a remote service,
// use the root loupe package.
package sdk
