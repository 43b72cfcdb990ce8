package endpoints

import (
	"github.com/jackzampolin/userboard/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// User endpoints
		&ListUsersEndpoint{},
		&CountUsersEndpoint{},
		&UserPagesEndpoint{},
		&GetUserEndpoint{},

		// Post endpoints
		&ListPostsEndpoint{},
		&CreatePostEndpoint{},
		&DeletePostEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},
		&UpdateSettingEndpoint{},
		&ResetSettingEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Browser UI
		&UsersPageEndpoint{},
		&UserPostsPageEndpoint{},
		&CreatePostFormEndpoint{},
		&DeletePostFormEndpoint{},
		&StaticEndpoint{},
	}
}

// Registry returns a registry holding every endpoint.
func Registry() *api.Registry {
	r := api.NewRegistry()
	for _, ep := range All() {
		r.Register(ep)
	}
	return r
}
