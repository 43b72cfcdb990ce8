// Package docs provides generated OpenAPI documentation.
//
// Userboard API
//
//	@title			Userboard API
//	@version		1.0
//	@description	User directory API: paginated users with addresses, per-user posts and runtime settings.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/userboard
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/userboard/serve.go -o . --outputTypes go --parseInternal
