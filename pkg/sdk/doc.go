// Package iconhub provides an embeddable Go client for the iconhub SVG icon
// catalog. It wires the same store, repositories and catalog service the
// HTTP API uses, in-process, against Valkey, Redis, PostgreSQL or memory.
//
// # Query the catalog
//
//	client, _ := iconhub.New(ctx, iconhub.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	res := client.FastSearch(ctx, iconhub.Query{Text: "home", Category: "rounded"}, iconhub.Page{Page: 1})
//	for _, ic := range res.Icons {
//	    fmt.Println(ic.Path, ic.GithubPath)
//	}
//
// # Browse the hierarchy
//
//	cats := client.Categories(ctx)
//	subs := client.Subcategories(ctx, cats[0].Name)
//	svg, err := client.SVG(ctx, "/assets/Rounded/Linear/Home/house.svg")
//	if errors.Is(err, iconhub.ErrNotFound) { ... }
//
// # Import icons
//
//	report, _ := client.ImportDir(ctx, "./piraicons-assets", iconhub.ImportOptions{Reset: true})
//
// Read operations are fail-soft: a store error is logged and reported as
// an empty result, never returned.
package iconhub
