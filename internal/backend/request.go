// Package backend implements the LDAP backend of the translation pipeline:
// the four SCIM CRUD verbs, each composing a scimcore.Registry against a
// directory.Interface for one resource kind at a time.
package backend

import "github.com/netresearch/scim-ldap-bridge/internal/scimcore"

// GetRequest carries the inputs for Backend.Get.
type GetRequest struct {
	ResourceName string
	ID           string
	Selection    scimcore.Selection
}

// PostRequest carries the inputs for Backend.Post.
type PostRequest struct {
	ResourceName string
	Body         *scimcore.Resource
	Selection    scimcore.Selection
}

// PutRequest carries the inputs for Backend.Put.
type PutRequest struct {
	ResourceName string
	ID           string
	Body         *scimcore.Resource
	Selection    scimcore.Selection
}

// DeleteRequest carries the inputs for Backend.Delete.
type DeleteRequest struct {
	ResourceName string
	ID           string
}
