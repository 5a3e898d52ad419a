/*
Package api is the client for the products REST endpoint.

# Endpoints

	GET    /api/products        list all products
	GET    /api/products/{id}   fetch one product
	POST   /api/products        create from {name, description, price}
	PUT    /api/products/{id}   replace name, description, price
	DELETE /api/products/{id}   remove, body ignored

# Errors

Any non-2xx response is returned as *StatusError regardless of the code or the
body the server sent; callers treat it as "not found" or "operation failed".
Transport failures are wrapped with the operation name. Nothing is retried.

# TLS Configuration

TLS support includes custom CA certificates, client certificates (mTLS) and
InsecureSkipVerify for development servers.

# Example Usage

	client, err := api.New("http://localhost:8080", api.WithLogger(logger))
	if err != nil {
		return err
	}
	products, err := client.List(ctx)
*/
package api
