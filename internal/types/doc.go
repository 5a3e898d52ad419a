/*
Package types defines core data structures used throughout catalog.

# Overview

The types package provides shared type definitions for:
  - Products as returned by the products API
  - Create and update request bodies
  - Activity log entries
  - Client TLS configuration

# Product Types

Product:
  - Catalog entity (id, name, description, price)
  - The server assigns the id

ProductInput:
  - Body of POST /api/products and PUT /api/products/{id}
  - Same fields as Product without the id

# Activity Log

Call:
  - One completed API call
  - Method, path, status and duration
  - Status 0 means the request never got a response

# Configuration

TLSConfig:
  - Client certificates (mTLS)
  - CA certificates
  - InsecureSkipVerify flag

# Field Tags

All types use JSON and YAML tags for serialization:
  - API bodies and CLI output (JSON)
  - Configuration files and CLI output (YAML)

The `omitempty` tag keeps optional fields out of serialized data.
*/
package types
