package client

import (
	"context"
	"net/http"
)

// Resource does CRUD operations on one named collection. Each
// operation issues a single HTTP call and decodes the JSON body into
// the caller-supplied value on success.
type Resource struct {
	key string
	api *Api
}

// List fetches the whole collection into out.
func (r *Resource) List(ctx context.Context, out any, opts ...CallOption) error {
	return r.api.do(ctx, http.MethodGet, "/"+r.key, nil, out, opts...)
}

// Select fetches the entity addressed by id into out.
func (r *Resource) Select(ctx context.Context, id string, out any, opts ...CallOption) error {
	return r.api.do(ctx, http.MethodGet, "/"+r.key+"/"+id, nil, out, opts...)
}

// Create posts data (JSON or *FormData) and decodes the created entity
// into out.
func (r *Resource) Create(ctx context.Context, data any, out any, opts ...CallOption) error {
	return r.api.do(ctx, http.MethodPost, "/"+r.key, data, out, opts...)
}

// Update patches the entity addressed by id with data and decodes the
// result into out.
func (r *Resource) Update(ctx context.Context, id string, data any, out any, opts ...CallOption) error {
	return r.api.do(ctx, http.MethodPatch, "/"+r.key+"/"+id, data, out, opts...)
}

// Delete removes the entity addressed by id.
func (r *Resource) Delete(ctx context.Context, id string, opts ...CallOption) error {
	return r.api.do(ctx, http.MethodDelete, "/"+r.key+"/"+id, nil, nil, opts...)
}
