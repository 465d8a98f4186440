package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/migscope/pkg/composables"
)

// PoolProvider resolves the connection pool of the active dataset
// environment at request time, so an environment switch takes effect for the
// next request without restarting the server.
type PoolProvider interface {
	Pool() *pgxpool.Pool
	Current() string
}

// ProvidePool puts the active environment's pool and name on the request
// context. Repositories reach it through composables.UsePool/UseTx.
func ProvidePool(provider PoolProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := composables.WithPool(r.Context(), provider.Pool())
			ctx = composables.WithEnvironment(ctx, provider.Current())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
