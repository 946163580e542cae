// Package api 内嵌 OpenAPI 文档
package api

import "embed"

//go:embed openapi/*.yaml
var OpenAPIFS embed.FS

// OpenAPISpec 返回 OpenAPI 文档原文
func OpenAPISpec() []byte {
	data, _ := OpenAPIFS.ReadFile("openapi/storefront.yaml")
	return data
}
