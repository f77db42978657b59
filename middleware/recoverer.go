package middleware

import (
	"fmt"
	"net/http"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/responses"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithField(ctx, "panic", fmt.Sprint(rec))
					}
					responses.WriteError(ctx, logg, w, apperrors.Internal(err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
