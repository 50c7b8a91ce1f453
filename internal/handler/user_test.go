package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap_22520060/internal/service"
)

func TestUserHandler_Search_BlankKeywordRejected(t *testing.T) {
	h := NewUserHandler(service.NewUserService(nil, nil))

	// A keyword of only spaces is as missing as no keyword at all; neither
	// may fall through to a match-everyone search.
	for _, target := range []string{"/users/search", "/users/search?keyword=%20%20%20"} {
		rec := httptest.NewRecorder()
		h.Search(rec, httptest.NewRequest(http.MethodGet, target, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}
