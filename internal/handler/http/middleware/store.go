package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/handler/http/response"
	jwtpkg "github.com/uchiyama0208/nightbase-sub008/internal/pkg/jwt"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/validator"
)

// RequireStore rejects tokens that are not scoped to a store.
func RequireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, payroll.ErrStoreScopeRequired)
			return
		}

		storeID, ok := claims[jwtpkg.ClaimStoreID].(string)
		if !ok || !validator.IsValidUUID(storeID) {
			response.HandleError(w, payroll.ErrStoreScopeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
