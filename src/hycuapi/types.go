package hycuapi

import "context"

// Object is one raw entity from an API envelope. Fields are optional and of
// unknown shape; the inventory package normalizes them.
type Object = map[string]any

// Metadata is the subset of the envelope metadata we read.
type Metadata struct {
	GrandTotalEntityCount int `json:"grandTotalEntityCount"`
	TotalEntityCount      int `json:"totalEntityCount"`
	PageSize              int `json:"pageSize"`
	PageNumber            int `json:"pageNumber"`
}

// Page is the envelope every HYCU list endpoint returns.
type Page struct {
	Entities []Object `json:"entities"`
	Metadata Metadata `json:"metadata"`
}

// Client is a narrow interface over the HYCU REST API used by the checks.
// Keep it small so it stays mockable.
type Client interface {
	// ListVMs returns every VM, sweeping all pages.
	ListVMs(ctx context.Context) ([]Object, error)
	// ListTargets returns every backup target, sweeping all pages.
	ListTargets(ctx context.Context) ([]Object, error)
	// VMBackups returns the first page of a VM's backup history, most recent first.
	VMBackups(ctx context.Context, vmUUID string) (Page, error)
}
