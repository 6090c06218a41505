// Package catalog publishes endpoint descriptors to a YApi-compatible API
// catalog.
//
// [FromDescriptor] maps an endpoint.Descriptor onto the catalog's interface
// entry: path variables become req_params, query parameters req_query, form
// fields req_body_form, and the body and response schemas are sent as JSON
// schema text. [Client] speaks the catalog's HTTP API, and [Publisher] ties
// the two together, resolving (and creating when missing) the category each
// endpoint is filed under.
//
//	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Token)
//	pub := catalog.NewPublisher(client, catalog.PublisherOptions{
//	    ProjectID:       cfg.Catalog.ProjectID,
//	    DefaultCategory: cfg.DefaultCategory,
//	    AutoCategory:    cfg.AutoCategory,
//	})
//	for _, d := range descriptors {
//	    if err := pub.Publish(ctx, d); err != nil {
//	        return err
//	    }
//	}
//
// Every catalog response carries an errcode; a non-zero errcode is returned as
// a *apierrors.CatalogError, as are transport failures and non-2xx statuses.
package catalog
