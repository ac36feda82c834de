package handlers

import (
	"net/http"
	"strconv"

	"github.com/uandc/arena-market/internal/api/middleware"
	"github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils/response"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// currentClaims pulls the authenticated user from the request context. The
// auth middleware guarantees it for protected routes; a miss means the route
// was wired without it.
func currentClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}

func parsePagination(r *http.Request) (page, pageSize int) {

	page = defaultPage
	pageSize = defaultPageSize

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	if s, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && s > 0 && s <= maxPageSize {
		pageSize = s
	}

	return page, pageSize
}
